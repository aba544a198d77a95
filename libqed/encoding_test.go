package libqed_test

import (
	"strings"
	"testing"

	"github.com/fine-structures/qedgen/libqed"
	"github.com/fine-structures/qedgen/qedgen"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestEncoding(t *testing.T) {
	for _, str := range canonTestExprs {
		X := libqed.MustParseExpr(str)
		buf := X.AppendEncoding(nil)
		Y, err := libqed.NewGraphFromEncoding(buf)
		require.NoError(t, err)
		require.True(t, X.Equal(Y), str)

		Xc := X.Canonize()
		require.Equal(t, Xc.AppendEncoding(nil), Xc.CanonicKey())
	}

	_, err := libqed.NewGraphFromEncoding([]byte{2})
	require.True(t, errors.Is(err, qedgen.ErrBadEncoding))

	_, err = libqed.NewGraphFromEncoding([]byte{2, 1, 0, 1, 0, 1})
	require.True(t, errors.Is(err, qedgen.ErrBadEncoding))

	_, err = libqed.NewGraphFromEncoding([]byte{2, 1, 0, 1, 0, 5, 2})
	require.True(t, errors.Is(err, qedgen.ErrBadEncoding))
}

func TestExprRoundTrip(t *testing.T) {
	for _, str := range canonTestExprs {
		X := libqed.MustParseExpr(str)
		require.Equal(t, str, X.ExprString())

		Xc := X.Canonize()
		Y, err := libqed.ParseExpr(Xc.ExprString())
		require.NoError(t, err)
		require.True(t, Xc.Equal(Y), str)
	}

	X := libqed.MustParseExpr("x0<-0, x1->0, 0~x2")
	require.Equal(t, "0->x0, x1->0, 0~x2", X.ExprString())
	require.NoError(t, X.ValidateQED(2, 1))

	_, err := libqed.ParseExpr("x0->")
	require.True(t, errors.Is(err, qedgen.ErrBadExpr))

	for _, str := range []string{
		"x0-9223372036854775807",
		"x9223372036854775807-0",
		"x0->0, 0->x1, 0~126",
	} {
		_, err = libqed.ParseExpr(str)
		require.True(t, errors.Is(err, qedgen.ErrBadExpr), str)
	}
}

func TestWriteAsString(t *testing.T) {
	X := libqed.MustParseExpr(vertexExpr)
	b := strings.Builder{}
	X.WriteAsString(&b, qedgen.DefaultPrintOpts)
	require.Equal(t, `L=0,f=2,b=1,v=4,e=3,"x0->0, 0->x1, 0~x2",`, b.String())

	b.Reset()
	X.WriteAsString(&b, qedgen.PrintOpts{Key: true})
	require.Equal(t, "0403", b.String()[:4])
}
