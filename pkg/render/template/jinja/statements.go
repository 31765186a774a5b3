package jinja

import (
	"fmt"

	"github.com/nikolalohinski/gonja/exec"
	"github.com/nikolalohinski/gonja/nodes"
	"github.com/nikolalohinski/gonja/parser"
	"github.com/nikolalohinski/gonja/tokens"
)

// ifStmt is the if/elif/else tag. Lookups in a condition that hit an
// undefined name count as false; bodies render with the template's own
// undefined handling.
type ifStmt struct {
	location   *tokens.Token
	conditions []nodes.Expression
	wrappers   []*nodes.Wrapper
}

func (stmt *ifStmt) Position() *tokens.Token { return stmt.location }

func (stmt *ifStmt) String() string {
	t := stmt.Position()
	return fmt.Sprintf("IfStmt(Line=%d Col=%d)", t.Line, t.Col)
}

func (stmt *ifStmt) Execute(r *exec.Renderer, _ *nodes.StatementBlock) error {
	for i, condition := range stmt.conditions {
		ok, err := truthy(r, condition)
		if err != nil {
			return err
		}
		if ok {
			return r.ExecuteWrapper(stmt.wrappers[i])
		}
	}
	if len(stmt.wrappers) > len(stmt.conditions) {
		return r.ExecuteWrapper(stmt.wrappers[len(stmt.conditions)])
	}
	return nil
}

func truthy(r *exec.Renderer, expr nodes.Expression) (bool, error) {
	switch n := expr.(type) {
	case *nodes.Name, *nodes.Getattr, *nodes.Getitem:
		value := lenient(r).Eval(n)
		if value.IsError() {
			return false, nil
		}
		return value.IsTrue(), nil
	case *nodes.Negation:
		ok, err := truthy(r, n.Term)
		return !ok, err
	case *nodes.BinaryExpression:
		switch n.Operator.Token.Val {
		case "and":
			ok, err := truthy(r, n.Left)
			if err != nil || !ok {
				return false, err
			}
			return truthy(r, n.Right)
		case "or":
			ok, err := truthy(r, n.Left)
			if err != nil || ok {
				return ok, err
			}
			return truthy(r, n.Right)
		}
	}

	value := r.Eval(expr)
	if value.IsError() {
		return false, value
	}
	return value.IsTrue(), nil
}

func lenient(r *exec.Renderer) *exec.Evaluator {
	cfg := r.EvalConfig.Inherit()
	cfg.StrictUndefined = false
	return &exec.Evaluator{EvalConfig: cfg, Ctx: r.Ctx}
}

func parseIf(p *parser.Parser, args *parser.Parser) (nodes.Statement, error) {
	stmt := &ifStmt{location: args.Current()}

	condition, err := args.ParseExpression()
	if err != nil {
		return nil, err
	}
	stmt.conditions = append(stmt.conditions, condition)
	if !args.End() {
		return nil, args.Error("if condition is malformed", nil)
	}

	for {
		wrapper, tagArgs, err := p.WrapUntil("elif", "else", "endif")
		if err != nil {
			return nil, err
		}
		stmt.wrappers = append(stmt.wrappers, wrapper)

		switch wrapper.EndTag {
		case "elif":
			condition, err := tagArgs.ParseExpression()
			if err != nil {
				return nil, err
			}
			stmt.conditions = append(stmt.conditions, condition)
			if !tagArgs.End() {
				return nil, tagArgs.Error("elif condition is malformed", nil)
			}
		default:
			if !tagArgs.End() {
				return nil, tagArgs.Error("arguments not allowed here", nil)
			}
		}

		if wrapper.EndTag == "endif" {
			return stmt, nil
		}
	}
}
