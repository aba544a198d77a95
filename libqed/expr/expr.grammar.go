package expr

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

var sExprLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Op", Pattern: `->|<-|-|~`},
	{Name: "Ext", Pattern: `x`},
	{Name: "Int", Pattern: `[0-9]+`},
	{Name: "Punct", Pattern: `,`},
	{Name: "whitespace", Pattern: `[ \t\r\n]+`},
})

var sParseExpr = participle.MustBuild[Expr](
	participle.Lexer(sExprLexer),
)

// Parse parses a graph expression into its edge list.
func Parse(str string) (*Expr, error) {
	return sParseExpr.ParseString("", str)
}

// NumVerts returns the number of external and internal vertices the expression names, taking the highest index
// of each kind as the last vertex of that kind.
func (ex *Expr) NumVerts() (numExternal, numInternal int) {
	for _, edge := range ex.Edges {
		for _, v := range [2]*Vtx{edge.A, edge.B} {
			if v.External {
				numExternal = max(numExternal, v.Index+1)
			} else {
				numInternal = max(numInternal, v.Index+1)
			}
		}
	}
	return
}
