package token

import "testing"

func collectKinds(t *testing.T, src string) []Kind {
	t.Helper()
	tok := NewTokenizer("test.php", src)
	var kinds []Kind
	for {
		tt := tok.Next()
		kinds = append(kinds, tt.Kind)
		if tt.Kind == EOF {
			return kinds
		}
	}
}

func TestTokenizerBasics(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []Kind
	}{
		{
			name: "open tag and class",
			src:  "<?php class Foo {}",
			want: []Kind{OpenTag, Class, String, CurlyOpen, CurlyClose, EOF},
		},
		{
			name: "doc comment then function",
			src:  "<?php /** @return int */ function f() {}",
			want: []Kind{OpenTag, DocComment, Function, String, ParenOpen, ParenClose, CurlyOpen, CurlyClose, EOF},
		},
		{
			name: "variable and default value",
			src:  "<?php function f($x = 1) {}",
			want: []Kind{OpenTag, Function, String, ParenOpen, Variable, Equal, LNumber, ParenClose, CurlyOpen, CurlyClose, EOF},
		},
		{
			name: "qualified name with backslash",
			src:  `<?php new \Foo\Bar();`,
			want: []Kind{OpenTag, New, Backslash, String, Backslash, String, ParenOpen, ParenClose, Semicolon, EOF},
		},
		{
			name: "double colon static access",
			src:  "<?php Foo::bar();",
			want: []Kind{OpenTag, String, DoubleColon, String, ParenOpen, ParenClose, Semicolon, EOF},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := collectKinds(t, tc.src)
			if len(got) != len(tc.want) {
				t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(tc.want), tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("token %d: got %s, want %s", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestTokenizerLineTracking(t *testing.T) {
	src := "<?php\nclass Foo {\n}\n"
	tok := NewTokenizer("test.php", src)
	var classTok Token
	for {
		tt := tok.Next()
		if tt.Kind == Class {
			classTok = tt
			break
		}
		if tt.Kind == EOF {
			t.Fatal("never saw Class token")
		}
	}
	if classTok.StartLine != 2 {
		t.Errorf("class token: got line %d, want 2", classTok.StartLine)
	}
}

func TestTokenizerPeekIsIdempotent(t *testing.T) {
	tok := NewTokenizer("test.php", "<?php class")
	first := tok.Peek()
	second := tok.Peek()
	if first.Kind != second.Kind || first.Image != second.Image {
		t.Fatalf("Peek not idempotent: %+v vs %+v", first, second)
	}
	consumed := tok.Next()
	if consumed.Kind != first.Kind {
		t.Fatalf("Next after Peek returned a different token: %+v vs %+v", consumed, first)
	}
}

func TestKindString(t *testing.T) {
	if Class.String() != "Class" {
		t.Errorf("Class.String() = %q, want Class", Class.String())
	}
	if Kind(9999).String() == "" {
		t.Error("unknown Kind should still render something")
	}
}

func TestIsMagicConstant(t *testing.T) {
	for _, k := range []Kind{Dir, File, Line, Self, NsC, FuncC, ClassC, MethodC} {
		if !k.IsMagicConstant() {
			t.Errorf("%s should be a magic constant", k)
		}
	}
	if String.IsMagicConstant() {
		t.Error("String should not be a magic constant")
	}
}
