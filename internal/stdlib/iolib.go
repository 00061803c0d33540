package stdlib

import (
	"io"
	"net/http"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"wfl/internal/ast"
	"wfl/internal/interpreter"
	"wfl/internal/value"
)

// registerIO wires the `io` category's HTTP and relational-database
// primitives (spec.md §4.8): an HTTP GET backed by net/http (the one
// stdlib choice here — no HTTP client library appears anywhere in the
// examples pack), and a SQLite-backed database handle through gorm,
// grounded on the database-generator teacher's own gorm.Open usage.
func registerIO(interp *interpreter.Interpreter) {
	interp.RegisterNative("http_get", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(call, 1, len(args))
		}
		url, ok := asText(args[0])
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		resp, err := http.Get(url)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		headers := map[string]string{}
		for k := range resp.Header {
			headers[k] = resp.Header.Get(k)
		}
		return &value.HttpResponse{StatusCode: resp.StatusCode, Body: string(body), Headers: headers}, nil
	})

	interp.RegisterConstructor("database", func(interp *interpreter.Interpreter, args []value.Value, create *ast.CreateStmt) (value.Value, error) {
		if len(args) != 1 {
			return nil, arityError(&ast.ActionCallExpr{Name: "create database"}, 1, len(args))
		}
		dsn, ok := asText(args[0])
		if !ok {
			return nil, argTypeError("create database", args[0])
		}
		db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		return value.NewDatabaseHandle(dsn, db), nil
	})

	interp.RegisterNative("db_query", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		handle, ok := args[0].(*value.DatabaseHandle)
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		sql, ok := asText(args[1])
		if !ok {
			return nil, argTypeError(call.Name, args[1])
		}
		db, ok := handle.Handle.(*gorm.DB)
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		var rows []map[string]interface{}
		if err := db.Raw(sql).Scan(&rows).Error; err != nil {
			return nil, err
		}
		elems := make([]value.Value, len(rows))
		for i, row := range rows {
			obj := value.NewObject()
			for k, v := range row {
				obj.Set(k, toValue(v))
			}
			elems[i] = obj
		}
		return &value.List{Elements: elems}, nil
	})

	interp.RegisterNative("db_exec", func(interp *interpreter.Interpreter, args []value.Value, call *ast.ActionCallExpr) (value.Value, error) {
		if len(args) != 2 {
			return nil, arityError(call, 2, len(args))
		}
		handle, ok := args[0].(*value.DatabaseHandle)
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		sql, ok := asText(args[1])
		if !ok {
			return nil, argTypeError(call.Name, args[1])
		}
		db, ok := handle.Handle.(*gorm.DB)
		if !ok {
			return nil, argTypeError(call.Name, args[0])
		}
		result := db.Exec(sql)
		if result.Error != nil {
			return nil, result.Error
		}
		return value.Integer{Val: result.RowsAffected}, nil
	})
}

func toValue(v interface{}) value.Value {
	switch n := v.(type) {
	case nil:
		return value.Null{}
	case string:
		return value.Text{Val: n}
	case bool:
		return value.Bool{Val: n}
	case int64:
		return value.Integer{Val: n}
	case float64:
		return value.Number{Val: n}
	case []byte:
		return value.Text{Val: string(n)}
	default:
		return value.Text{Val: ""}
	}
}
