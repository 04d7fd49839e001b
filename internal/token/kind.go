package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	EOF          // end of input

	Whitespace        // spaces, tabs and newlines
	SingleLineComment // //
	HashComment       // #
	MultiLineComment  // /* */
	DocBlockComment   // /** */

	InlineText       // raw text outside PHP tags
	OpenTag          // <?php
	ShortOpenTag     // <?
	EchoTag          // <?=
	CloseTag         // ?>
	HaltCompilerData // bytes after __halt_compiler();

	Variable            // $name
	Ident               // unqualified name
	QualifiedIdent      // A\B
	FullyQualifiedIdent // \A\B
	RelativeIdent       // namespace\A

	IntLit
	FloatLit
	StringLit     // single-quoted or non-interpolated double-quoted
	StringPart    // literal text inside an interpolated string
	DoubleQuote   // "
	Backtick      // `
	DocumentStart // <<<
	DocumentEnd   // heredoc/nowdoc closing label

	IntCast    // (int)
	BoolCast   // (bool)
	FloatCast  // (float)
	StringCast // (string)
	ArrayCast  // (array)
	ObjectCast // (object)
	UnsetCast  // (unset)
	VoidCast   // (void)

	Plus                   // +
	Minus                  // -
	Star                   // *
	Slash                  // /
	Percent                // %
	StarStar               // **
	Dot                    // .
	Assign                 // =
	PlusAssign             // +=
	MinusAssign            // -=
	StarAssign             // *=
	SlashAssign            // /=
	PercentAssign          // %=
	StarStarAssign         // **=
	DotAssign              // .=
	AmpAssign              // &=
	PipeAssign             // |=
	CaretAssign            // ^=
	ShlAssign              // <<=
	ShrAssign              // >>=
	QuestionQuestionAssign // ??=
	EqEq                   // ==
	EqEqEq                 // ===
	BangEq                 // !=
	BangEqEq               // !==
	LtGt                   // <>
	Lt                     // <
	LtEq                   // <=
	Gt                     // >
	GtEq                   // >=
	Spaceship              // <=>
	Shl                    // <<
	Shr                    // >>
	Amp                    // &
	Pipe                   // |
	Caret                  // ^
	Tilde                  // ~
	Bang                   // !
	AndAnd                 // &&
	OrOr                   // ||
	Question               // ?
	QuestionQuestion       // ??
	NullsafeArrow          // ?->
	Colon                  // :
	ColonColon             // ::
	Semicolon              // ;
	Comma                  // ,
	Arrow                  // ->
	FatArrow               // =>
	PlusPlus               // ++
	MinusMinus             // --
	At                     // @
	Dollar                 // $
	DollarLBrace           // ${
	Backslash              // \
	Ellipsis               // ...
	PipeGt                 // |>
	HashLBracket           // #[
	LParen                 // (
	RParen                 // )
	LBrace                 // {
	RBrace                 // }
	LBracket               // [
	RBracket               // ]

	keywordStart
	KwAbstract     // abstract
	KwAnd          // and
	KwArray        // array
	KwAs           // as
	KwBreak        // break
	KwCallable     // callable
	KwCase         // case
	KwCatch        // catch
	KwClass        // class
	KwClone        // clone
	KwConst        // const
	KwContinue     // continue
	KwDeclare      // declare
	KwDefault      // default
	KwDie          // die
	KwDo           // do
	KwEcho         // echo
	KwElse         // else
	KwElseif       // elseif
	KwEmpty        // empty
	KwEnddeclare   // enddeclare
	KwEndfor       // endfor
	KwEndforeach   // endforeach
	KwEndif        // endif
	KwEndswitch    // endswitch
	KwEndwhile     // endwhile
	KwEval         // eval
	KwExit         // exit
	KwExtends      // extends
	KwFinal        // final
	KwFinally      // finally
	KwFn           // fn
	KwFor          // for
	KwForeach      // foreach
	KwFunction     // function
	KwGlobal       // global
	KwGoto         // goto
	KwIf           // if
	KwImplements   // implements
	KwInclude      // include
	KwIncludeOnce  // include_once
	KwInstanceof   // instanceof
	KwInsteadof    // insteadof
	KwInterface    // interface
	KwIsset        // isset
	KwList         // list
	KwMatch        // match
	KwNamespace    // namespace
	KwNew          // new
	KwOr           // or
	KwPrint        // print
	KwPrivate      // private
	KwProtected    // protected
	KwPublic       // public
	KwReadonly     // readonly
	KwRequire      // require
	KwRequireOnce  // require_once
	KwReturn       // return
	KwStatic       // static
	KwSwitch       // switch
	KwThrow        // throw
	KwTrait        // trait
	KwTry          // try
	KwUnset        // unset
	KwUse          // use
	KwVar          // var
	KwWhile        // while
	KwXor          // xor
	KwYield        // yield
	KwHaltCompiler // __halt_compiler
	KwPrivateSet   // private(set)
	KwProtectedSet // protected(set)
	KwPublicSet    // public(set)
	keywordEnd

	magicStart
	MagicClass     // __CLASS__
	MagicDir       // __DIR__
	MagicFile      // __FILE__
	MagicFunction  // __FUNCTION__
	MagicLine      // __LINE__
	MagicMethod    // __METHOD__
	MagicNamespace // __NAMESPACE__
	MagicTrait     // __TRAIT__
	MagicProperty  // __PROPERTY__
	magicEnd
)
