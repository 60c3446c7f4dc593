package xpgx

import (
	"fmt"
	"reflect"

	"github.com/jackc/pgx/v5"
)

func collectOne(rows pgx.Rows, dst any) error {
	defer rows.Close()

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("xpgx: dst must be a pointer to struct, got %T", dst)
	}

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return err
		}
		return pgx.ErrNoRows
	}

	if err := scanStruct(rows, v.Elem()); err != nil {
		return err
	}

	// drain so Err reports failures after the first row
	for rows.Next() {
	}
	return rows.Err()
}

func collectAll(rows pgx.Rows, dst any) error {
	defer rows.Close()

	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Slice {
		return fmt.Errorf("xpgx: dst must be a pointer to slice, got %T", dst)
	}

	slice := v.Elem()
	elemType := slice.Type().Elem()
	isPtr := elemType.Kind() == reflect.Pointer
	structType := elemType
	if isPtr {
		structType = elemType.Elem()
	}

	for rows.Next() {
		item := reflect.New(structType)
		if err := scanStruct(rows, item.Elem()); err != nil {
			return err
		}
		if isPtr {
			slice = reflect.Append(slice, item)
		} else {
			slice = reflect.Append(slice, item.Elem())
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	v.Elem().Set(slice)
	return nil
}

// scanStruct maps result columns onto fields by their db tag. Columns without a
// matching field are discarded.
func scanStruct(rows pgx.Rows, v reflect.Value) error {
	fields := make(map[string]int, v.NumField())
	t := v.Type()
	for i := 0; i < t.NumField(); i++ {
		if tag := t.Field(i).Tag.Get("db"); tag != "" && tag != "-" {
			fields[tag] = i
		}
	}

	descriptions := rows.FieldDescriptions()
	targets := make([]any, len(descriptions))
	for i, fd := range descriptions {
		idx, ok := fields[fd.Name]
		if !ok {
			var discard any
			targets[i] = &discard
			continue
		}
		targets[i] = v.Field(idx).Addr().Interface()
	}

	if err := rows.Scan(targets...); err != nil {
		return fmt.Errorf("rows.Scan: %w", err)
	}
	return nil
}
