package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB: ограничение для тестового корпуса
)

// builtinSeeds cover the lexer modes a random mutator rarely reaches on its own.
var builtinSeeds = []string{
	"",
	"<html><?php echo 1; ?></html>",
	"<?= $x ?>",
	"<? echo 1;",
	"<?php $s = \"a $b[0] {$c->d} ${e}\";",
	"<?php $h = <<<EOT\n  line $x\n  EOT;\n",
	"<?php $n = <<<'EOT'\nraw\nEOT;\n",
	"<?php `ls $dir`;",
	"<?php /* open comment",
	"<?php #[Attr(1)] final readonly class A extends B implements C { public function __construct(private int $x = 0x1F) {} }",
	"<?php enum S: string { case A = 'a'; }",
	"<?php $f = fn($x) => $x |> strlen(...);",
	"<?php match (true) { $a > 1, $a < 0 => 'x', default => 'y' };",
	"<?php class P { public string $name { get => $this->name; set { $this->name = $value; } } }",
	"<?php __halt_compiler(); raw bytes \x00\xff",
	"<?php 1_000 0b1_0 0o17 1.5e-3 .5 0x;",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range builtinSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.php файлы
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".php") {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
