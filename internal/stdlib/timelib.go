package stdlib

import (
	"time"

	"wfl/internal/ast"
	"wfl/internal/interpreter"
	"wfl/internal/value"
)

const defaultLayout = "2006-01-02 15:04:05"
const dateLayout = "2006-01-02"

func asDateTime(v value.Value) (value.DateTime, bool) {
	dt, ok := v.(value.DateTime)
	return dt, ok
}

func registerTime(interp *interpreter.Interpreter) {
	interp.RegisterNative("today", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		now := time.Now()
		midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
		return value.DateTime{Unix: midnight.Unix(), Layout: dateLayout}, nil
	})

	interp.RegisterNative("now", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		return value.DateTime{Unix: time.Now().Unix(), Layout: defaultLayout}, nil
	})

	interp.RegisterNative("datetime_now", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		return value.DateTime{Unix: time.Now().Unix(), Layout: defaultLayout}, nil
	})

	interp.RegisterNative("format_date", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		dt, ok := asDateTime(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		return value.Text{Val: time.Unix(dt.Unix, 0).UTC().Format(dateLayout)}, nil
	})

	interp.RegisterNative("format_time", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		dt, ok := asDateTime(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		return value.Text{Val: time.Unix(dt.Unix, 0).UTC().Format(defaultLayout)}, nil
	})

	interp.RegisterNative("create_date", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 3 {
			return nil, arityError(call, 3, len(args))
		}
		y, ok1 := asNumber(args[0])
		m, ok2 := asNumber(args[1])
		d, ok3 := asNumber(args[2])
		if !ok1 || !ok2 || !ok3 {
			return nil, argTypeError(call.Name, args[0])
		}
		t := time.Date(int(y), time.Month(int(m)), int(d), 0, 0, 0, 0, time.UTC)
		return value.DateTime{Unix: t.Unix(), Layout: dateLayout}, nil
	})

	interp.RegisterNative("add_days", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		dt, ok := asDateTime(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		n, ok := asNumber(args[1])
		if !ok {
			return nil, argTypeError(call.Name, args[1])
		}
		t := time.Unix(dt.Unix, 0).UTC().AddDate(0, 0, int(n))
		return value.DateTime{Unix: t.Unix(), Layout: dt.Layout}, nil
	})

	interp.RegisterNative("days_between", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		a, ok1 := asDateTime(args[0])
		b, ok2 := asDateTime(args[1])
		if !ok1 || !ok2 {
			return nil, argTypeError(call.Name, args[0])
		}
		days := (b.Unix - a.Unix) / int64((24 * time.Hour).Seconds())
		return value.Integer{Val: days}, nil
	})

	interp.RegisterNative("parse_date", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		s, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		t, err := time.Parse(dateLayout, s)
		if err != nil {
			return nil, err
		}
		return value.DateTime{Unix: t.Unix(), Layout: dateLayout}, nil
	})

	interp.RegisterNative("parse_time", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		s, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		t, err := time.Parse(defaultLayout, s)
		if err != nil {
			return nil, err
		}
		return value.DateTime{Unix: t.Unix(), Layout: defaultLayout}, nil
	})
}
