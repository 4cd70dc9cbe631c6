package routine

import (
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// routineLexer tokenizes the routine expression syntax. Subroutine names
// are hyphenated identifiers; wire tags (dyn/static) lex as identifiers
// and are matched literally by the grammar.
var routineLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Ident", Pattern: `[a-zA-Z][a-zA-Z0-9-]*`},
	{Name: "Int", Pattern: `-?[0-9]+`},
	{Name: "Punct", Pattern: `[()\[\],]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

type routineExpr struct {
	Nodes []*nodeExpr `"[" ( @@ ","? )* "]"`
}

type nodeExpr struct {
	Name  string      `"(" @Ident`
	Wires []*wireExpr `@@+ ")"`
}

type wireExpr struct {
	Kind  string `"(" @("dyn" | "static")`
	Value int    `@Int ")"`
}

var parser = buildParser()

func buildParser() *participle.Parser[routineExpr] {
	p, err := participle.Build[routineExpr](
		participle.Lexer(routineLexer),
		participle.Elide("Whitespace"),
	)
	if err != nil {
		panic(fmt.Errorf("building routine parser: %w", err))
	}
	return p
}

// Parse reads a routine from its concrete syntax. The result satisfies
// Validate; callers still need the checker for library-aware checks.
func Parse(src string) (*Routine, error) {
	expr, err := parser.ParseString("", src)
	if err != nil {
		return nil, fmt.Errorf("parsing routine: %w", err)
	}

	r := &Routine{Nodes: make([]Node, len(expr.Nodes))}
	for i, ne := range expr.Nodes {
		wires := make([]Wire, len(ne.Wires))
		for s, we := range ne.Wires {
			switch we.Kind {
			case "dyn":
				wires[s] = Dyn(we.Value)
			case "static":
				wires[s] = Static(we.Value)
			}
		}
		r.Nodes[i] = Node{Name: ne.Name, Wires: wires}
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
