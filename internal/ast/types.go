package ast

// BadType stands in for a type that could not be parsed.
type BadType struct {
	Base
}

// NamedType covers class names as well as int, self, static, mixed, ...
type NamedType struct {
	Base
	Name *Name
}

type NullableType struct {
	Base
	Inner TypeHint
}

// UnionType is A|B. In DNF form members may be parenthesized intersections.
type UnionType struct {
	Base
	Types []TypeHint
}

// IntersectionType is A&B; Parens marks a DNF group (A&B).
type IntersectionType struct {
	Base
	Types  []TypeHint
	Parens bool
}

func (*BadType) Kind() Kind          { return TypeBad }
func (*NamedType) Kind() Kind        { return TypeNamed }
func (*NullableType) Kind() Kind     { return TypeNullable }
func (*UnionType) Kind() Kind        { return TypeUnion }
func (*IntersectionType) Kind() Kind { return TypeIntersection }

func (*BadType) typeNode()          {}
func (*NamedType) typeNode()        {}
func (*NullableType) typeNode()     {}
func (*UnionType) typeNode()        {}
func (*IntersectionType) typeNode() {}
