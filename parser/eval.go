package parser

import (
	"fmt"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/cottand/dnf/internal/log"
	"github.com/cottand/dnf/types"
	"github.com/cottand/dnf/util"
	"log/slog"
	"strings"
)

// Result is what a single statement evaluated to: either a newly defined
// class, or a normalised type
type Result struct {
	Class *types.Class
	Type  types.Type
}

func (r Result) String() string {
	if r.Class == nil {
		return r.Type.String()
	}
	sb := &strings.Builder{}
	if r.Class.IsFinal() {
		sb.WriteString("final ")
	}
	sb.WriteString("class ")
	sb.WriteString(r.Class.Name())
	sb.WriteString("(")
	sb.WriteString(util.JoinString(r.Class.Bases(), ", "))
	sb.WriteString(")")
	return sb.String()
}

// Interpreter evaluates statements against a TypeCtx, so that classes
// declared by earlier statements are visible to later ones
type Interpreter struct {
	ctx    *types.TypeCtx
	logger *slog.Logger
}

func NewInterpreter(ctx *types.TypeCtx) *Interpreter {
	return &Interpreter{
		ctx:    ctx,
		logger: log.DefaultLogger.With("section", "parser"),
	}
}

// Run parses and evaluates every statement in src. A statement that fails
// does not stop the ones after it, and its error is collected instead.
func (in *Interpreter) Run(filename, src string) ([]Result, *Errors) {
	program, err := parse(filename, src)
	if err != nil {
		return nil, (*Errors)(nil).With(err)
	}
	var results []Result
	var errs *Errors
	for _, stmt := range program.Statements {
		result, err := in.Eval(stmt)
		if err != nil {
			errs = errs.With(err)
			continue
		}
		results = append(results, result)
	}
	if errs.HasError() {
		in.logger.Debug("statements failed", "filename", filename, "errors", errs)
	}
	return results, errs
}

func (in *Interpreter) Eval(stmt *Statement) (Result, *Error) {
	if stmt.Class != nil {
		class, err := in.defineClass(stmt.Class)
		if err != nil {
			return Result{}, err
		}
		return Result{Class: class}, nil
	}
	ty, err := in.union(stmt.Expr)
	if err != nil {
		return Result{}, err
	}
	in.logger.Debug("normalised", "pos", stmt.Pos, "type", ty)
	return Result{Type: ty}, nil
}

func (in *Interpreter) defineClass(decl *ClassDecl) (*types.Class, *Error) {
	bases := make([]*types.Class, 0, len(decl.Bases))
	for _, name := range decl.Bases {
		base, ok := in.ctx.LookupClass(name)
		if !ok {
			return nil, undefinedName(decl.Pos, name)
		}
		bases = append(bases, base)
	}
	class, err := in.ctx.DefineClass(decl.Name, decl.Final, bases...)
	if err != nil {
		return nil, &Error{Code: InvalidClass, Pos: decl.Pos, Message: err.Error(), cause: err}
	}
	return class, nil
}

func (in *Interpreter) union(expr *UnionExpr) (types.Type, *Error) {
	if len(expr.Terms) == 1 {
		return in.intersection(expr.Terms[0])
	}
	b := types.NewUnionBuilder(in.ctx)
	for _, term := range expr.Terms {
		ty, err := in.intersection(term)
		if err != nil {
			return nil, err
		}
		b.Add(ty)
	}
	return b.Build(), nil
}

func (in *Interpreter) intersection(expr *IntersectionExpr) (types.Type, *Error) {
	if len(expr.Factors) == 1 {
		return in.unary(expr.Factors[0])
	}
	b := types.NewIntersectionBuilder(in.ctx)
	for _, factor := range expr.Factors {
		if factor.Negated != nil {
			ty, err := in.unary(factor.Negated)
			if err != nil {
				return nil, err
			}
			b = b.AddNegative(ty)
			continue
		}
		ty, err := in.atom(factor.Atom)
		if err != nil {
			return nil, err
		}
		b = b.AddPositive(ty)
	}
	return b.Build(), nil
}

func (in *Interpreter) unary(expr *UnaryExpr) (types.Type, *Error) {
	if expr.Negated == nil {
		return in.atom(expr.Atom)
	}
	ty, err := in.unary(expr.Negated)
	if err != nil {
		return nil, err
	}
	return in.ctx.Negate(ty), nil
}

func (in *Interpreter) atom(expr *AtomExpr) (types.Type, *Error) {
	switch {
	case len(expr.Literal) > 0:
		b := types.NewUnionBuilder(in.ctx)
		for _, value := range expr.Literal {
			b.Add(value.toType())
		}
		return b.Build(), nil
	case expr.Todo:
		return types.Todo{Reason: expr.TodoReason}, nil
	case expr.Group != nil:
		return in.union(expr.Group)
	default:
		return in.name(expr.Pos, expr.Name)
	}
}

func (in *Interpreter) name(pos lexer.Position, name string) (types.Type, *Error) {
	switch name {
	case "Never":
		return types.Never{}, nil
	case "Any":
		return types.Any{}, nil
	case "Unknown":
		return types.Unknown{}, nil
	case "LiteralString":
		return types.LiteralString{}, nil
	case "AlwaysTruthy":
		return types.AlwaysTruthy{}, nil
	case "AlwaysFalsy":
		return types.AlwaysFalsy{}, nil
	case "None":
		return in.ctx.None(), nil
	}
	class, ok := in.ctx.LookupClass(name)
	if !ok {
		return nil, undefinedName(pos, name)
	}
	return types.Instance{Class: class}, nil
}

func (v *LiteralValue) toType() types.Type {
	switch {
	case v.Int != nil:
		return types.IntLiteral{Value: *v.Int}
	case v.Str != nil:
		return types.StringLiteral{Value: *v.Str}
	default:
		return types.BooleanLiteral{Value: bool(*v.Bool)}
	}
}

func undefinedName(pos lexer.Position, name string) *Error {
	return &Error{Code: UndefinedName, Pos: pos, Message: fmt.Sprintf("undefined name %s", name)}
}
