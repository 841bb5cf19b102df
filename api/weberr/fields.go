package weberr

import "errors"

type fielder interface {
	Fields() map[string]interface{}
}

// Fields merges the fields of every layer of err. Outer layers win when
// two layers set the same key.
func Fields(err error) (fields map[string]interface{}, ok bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		fe, is := e.(fielder)
		if !is {
			continue
		}

		if fields == nil {
			fields = map[string]interface{}{}
		}
		for k, v := range fe.Fields() {
			if _, set := fields[k]; !set {
				fields[k] = v
			}
		}
	}
	return fields, fields != nil
}

type fieldsError struct {
	error
	fields map[string]interface{}
}

func (e *fieldsError) Fields() map[string]interface{} { return e.fields }

func (e *fieldsError) Unwrap() error { return e.error }
