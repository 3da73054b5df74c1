package format

import (
	"testing"

	"github.com/olehluchkiv/partials/internal/syntax"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func member(leading, text, trailing string) *syntax.Member {
	return syntax.MemberSyntax{
		Leading:  syntax.ScanTrivia(leading),
		Kind:     syntax.MemberMethod,
		Text:     text,
		Trailing: syntax.ScanTrivia(trailing),
	}.Build()
}

func typeDecl(name, header, open, close string, members ...syntax.Node) *syntax.TypeDecl {
	return syntax.TypeDeclSyntax{
		Modifiers: []string{"public"},
		Keyword:   "class",
		Name:      name,
		Header:    header,
		Open:      syntax.ScanTrivia(open),
		Members:   members,
		Close:     syntax.ScanTrivia(close),
		Trailing:  syntax.ScanTrivia("\n"),
	}.Build()
}

func format(n syntax.Node) string {
	return syntax.Print(New(DefaultOptions()).Format(n))
}

func TestFormat_Fragments(t *testing.T) {
	first := typeDecl("Foo", "\n", "\n", "",
		member("    ", "void A() { }", "\n"),
		member("    ", "void B() { }", "\n"),
	).WithModifier(syntax.PartialModifier).WithoutTrailingTrivia()
	second := syntax.NewTypeDecl([]string{"public", "partial"}, "class", "Foo").
		WithMembers([]syntax.Node{member("    ", "void C() { }", "\n")}).
		WithLeadingTrivia(syntax.LineFeed(), syntax.LineFeed())
	root := syntax.NewCompilationUnit([]syntax.Node{
		syntax.NewUsing("System"),
		syntax.NewNamespace("App", false, []syntax.Node{first, second}),
	}, nil)

	assert.Equal(t, "using System;\n"+
		"namespace App\n{\n"+
		"    public partial class Foo\n    {\n        void A() { }\n        void B() { }\n    }\n"+
		"\n"+
		"    public partial class Foo\n    {\n        void C() { }\n    }\n"+
		"}\n", format(root))
}

func TestFormat_CommentsBlankLinesAndReindent(t *testing.T) {
	foo := typeDecl("Foo", " ", "\n", "\n\n  ",
		member("\n\n  // first\n  ", "void A()\n  {\n      x();\n  }", "   // trailing\n"),
		member("\n\n\n\t", "int b;", "\n"),
	)
	root := syntax.NewCompilationUnit([]syntax.Node{foo}, nil)

	assert.Equal(t, "public class Foo\n{\n"+
		"    // first\n"+
		"    void A()\n    {\n        x();\n    } // trailing\n"+
		"\n"+
		"    int b;\n"+
		"}\n", format(root))
}

func TestFormat_OneDeclarationPerLine(t *testing.T) {
	foo := typeDecl("Foo", " ", " ", "",
		member("", "int a;", " "),
		member("", "int b;", " "),
	)
	foo = foo.WithoutTrailingTrivia()
	assert.Equal(t, "public class Foo\n{\n    int a;\n    int b;\n}\n",
		format(syntax.NewCompilationUnit([]syntax.Node{foo}, nil)))
}

func TestFormat_Directives(t *testing.T) {
	foo := typeDecl("Foo", "\n", "\n", "  #endregion\n",
		member("  #region R\n#if DEBUG\n  ", "void A() { }", "\n#endif\n"),
	)
	assert.Equal(t, "public class Foo\n{\n"+
		"    #region R\n#if DEBUG\n    void A() { }\n#endif\n    #endregion\n"+
		"}\n", format(syntax.NewCompilationUnit([]syntax.Node{foo}, nil)))
}

func TestFormat_FileScopedNamespace(t *testing.T) {
	foo := typeDecl("Foo", "\n", "\n", "", member("    ", "void A() { }", "\n"))
	root := syntax.NewCompilationUnit([]syntax.Node{
		syntax.NewNamespace("App", true, []syntax.Node{foo}),
	}, syntax.ScanTrivia("\n\n// end\n\n\n"))

	assert.Equal(t, "namespace App;\npublic class Foo\n{\n    void A() { }\n}\n\n// end\n", format(root))
}

func TestFormat_Attributes(t *testing.T) {
	s := typeDecl("Foo", "\n", "\n", "").Syntax()
	s.Attributes = "[Serializable]\n  [Obsolete]   \n  "
	root := syntax.NewCompilationUnit([]syntax.Node{
		syntax.NewNamespace("App", false, []syntax.Node{s.Build()}),
	}, nil)

	assert.Equal(t, "namespace App\n{\n"+
		"    [Serializable]\n    [Obsolete]\n    public class Foo\n    {\n    }\n"+
		"}\n", format(root))
}

func TestFormat_VerbatimStringUntouched(t *testing.T) {
	text := "string S = @\"\n  keep\n      me\";"
	foo := typeDecl("Foo", "\n", "\n", "", member("  ", text, "\n"))
	got := New(DefaultOptions()).Format(syntax.NewCompilationUnit([]syntax.Node{foo}, nil))

	m := syntax.Types(got)[0].Node().(*syntax.TypeDecl).Members()[0].(*syntax.Member)
	assert.Equal(t, text, m.Text())
}

func TestFormat_NonUnitNode(t *testing.T) {
	foo := typeDecl("Foo", " ", " ", "", member("", "int a;", "\n")).
		WithLeadingTrivia(syntax.ScanTrivia("\n\n   ")...)
	got := New(DefaultOptions()).Format(foo)
	require.IsType(t, &syntax.TypeDecl{}, got)
	assert.Equal(t, "public class Foo\n{\n    int a;\n}\n", syntax.Print(got))
}

func TestFormat_Tabs(t *testing.T) {
	foo := typeDecl("Foo", "\n", "\n", "", member("  ", "void A()\n  {\n  }", "\n"))
	f := New(Options{Indent: "\t", NewLine: "\r\n", MaxBlankLines: 1})
	got := syntax.Print(f.Format(syntax.NewCompilationUnit([]syntax.Node{foo}, nil)))
	assert.Equal(t, "public class Foo\r\n{\r\n\tvoid A()\r\n\t{\r\n\t}\r\n}\r\n", got)
}

func TestFormat_Idempotent(t *testing.T) {
	inputs := []syntax.Node{
		syntax.NewCompilationUnit([]syntax.Node{
			typeDecl("Foo", " ", "  // open\n\n", "\n  // tail\n\n  ",
				member("\n\n  // first\n  ", "void A()\n  {\n      x();\n  }", "   // trailing\n"),
				member("\n\n\n\t", "int b;", " "),
				member("", "int c;", "\n  #endregion\n"),
			),
		}, syntax.ScanTrivia("\n\n")),
		syntax.NewCompilationUnit([]syntax.Node{
			syntax.NewUsing("System"),
			syntax.NewNamespace("App", true, []syntax.Node{typeDecl("Foo", "\n", "\n", "")}),
		}, syntax.ScanTrivia("// end")),
	}
	f := New(DefaultOptions())
	for i, in := range inputs {
		once := f.Format(in)
		twice := f.Format(once)
		assert.Equal(t, syntax.Print(once), syntax.Print(twice), "input %d", i)
		assert.True(t, syntax.Equivalent(in, once), "input %d keeps its tokens", i)
	}
}

func TestNew_ZeroOptionsKeepFragmentSeparator(t *testing.T) {
	assert.Equal(t, DefaultOptions(), New(Options{}).opts)

	first := typeDecl("Foo", "\n", "\n", "", member("    ", "void A() { }", "\n")).WithoutTrailingTrivia()
	second := syntax.NewTypeDecl([]string{"partial"}, "class", "Foo").
		WithMembers([]syntax.Node{member("    ", "void B() { }", "\n")}).
		WithLeadingTrivia(syntax.LineFeed(), syntax.LineFeed())
	root := syntax.NewCompilationUnit([]syntax.Node{first, second}, nil)
	assert.Contains(t, syntax.Print(New(Options{}).Format(root)), "}\n\npartial class Foo")
}

func TestNew_Defaults(t *testing.T) {
	f := New(Options{MaxBlankLines: -3})
	assert.Equal(t, "    ", f.opts.Indent)
	assert.Equal(t, "\n", f.opts.NewLine)
	assert.Zero(t, f.opts.MaxBlankLines)
}
