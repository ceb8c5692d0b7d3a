package constant_test

import (
	"strings"
	"testing"

	"github.com/RafayelGardishyan/angular/packages/compiler/src/output"
	constant "github.com/RafayelGardishyan/angular/packages/compiler/src/pool"
)

func literalArray(values ...string) *output.LiteralArrayExpr {
	entries := make([]output.OutputExpression, len(values))
	for i, value := range values {
		entries[i] = output.NewLiteralExpr(value, nil, nil)
	}
	return output.NewLiteralArrayExpr(entries, nil, nil)
}

func TestConstantPool(t *testing.T) {
	t.Run("should not pool simple literals", func(t *testing.T) {
		pool := constant.NewConstantPool()
		literal := output.NewLiteralExpr("short", nil, nil)
		if got := pool.GetConstLiteral(literal, false); got != literal {
			t.Errorf("GetConstLiteral() = %v, want the literal itself", got)
		}
		if len(pool.GetStatements()) != 0 {
			t.Errorf("pool has %d statements, want 0", len(pool.GetStatements()))
		}
	})

	t.Run("should pool long string literals on reuse", func(t *testing.T) {
		pool := constant.NewConstantPool()
		value := strings.Repeat("x", 60)
		literal := output.NewLiteralExpr(value, nil, nil)
		first := pool.GetConstLiteral(literal, false)
		if first == output.OutputExpression(literal) {
			t.Error("GetConstLiteral() returned the literal itself, want a pooled reference")
		}
		if len(pool.GetStatements()) != 0 {
			t.Errorf("pool has %d statements after a single use, want 0", len(pool.GetStatements()))
		}
		second := pool.GetConstLiteral(output.NewLiteralExpr(value, nil, nil), false)
		if first != second {
			t.Error("reused long string was not shared")
		}
		if len(pool.GetStatements()) != 1 {
			t.Errorf("pool has %d statements after reuse, want 1", len(pool.GetStatements()))
		}
	})

	t.Run("should share identical literals", func(t *testing.T) {
		pool := constant.NewConstantPool()
		first := pool.GetConstLiteral(literalArray("id", "foo"), true)
		second := pool.GetConstLiteral(literalArray("id", "foo"), true)
		if first != second {
			t.Error("identical literals were not shared")
		}
		if len(pool.GetStatements()) != 1 {
			t.Errorf("pool has %d statements, want 1", len(pool.GetStatements()))
		}
	})

	t.Run("should keep different literals apart", func(t *testing.T) {
		pool := constant.NewConstantPool()
		first := pool.GetConstLiteral(literalArray("id", "foo"), true)
		second := pool.GetConstLiteral(literalArray("id", "bar"), true)
		if first == second {
			t.Error("different literals were shared")
		}
		if len(pool.GetStatements()) != 2 {
			t.Errorf("pool has %d statements, want 2", len(pool.GetStatements()))
		}
	})

	t.Run("should share on second use without forceShared", func(t *testing.T) {
		pool := constant.NewConstantPool()
		pool.GetConstLiteral(literalArray("a"), false)
		pool.GetConstLiteral(literalArray("a"), false)
		if len(pool.GetStatements()) != 1 {
			t.Errorf("pool has %d statements, want 1", len(pool.GetStatements()))
		}
	})

	t.Run("should generate unique names", func(t *testing.T) {
		pool := constant.NewConstantPool()
		first := pool.UniqueName("_t", false)
		second := pool.UniqueName("_t", false)
		third := pool.UniqueName("_t", false)
		if first != "_t" || second != "_t1" || third != "_t2" {
			t.Errorf("UniqueName() = %q, %q, %q", first, second, third)
		}
	})

	t.Run("should emit pooled constants as const declarations", func(t *testing.T) {
		pool := constant.NewConstantPool()
		pool.GetConstLiteral(literalArray("id", "foo"), true)
		source := output.EmitStatements(pool.GetStatements())
		if !strings.Contains(source, "const _c0 = ['id', 'foo'];") {
			t.Errorf("emitted source %q does not contain the pooled constant", source)
		}
	})
}
