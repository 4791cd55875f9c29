// Package schema describes the database objects code is generated from.
//
// A [TableView] is a table or view name with its ordered columns. Column
// order decides the order of generated fields, properties and constructor
// parameters, so adapters must preserve the database's ordinal order.
//
// Objects come either from a live database through the inspect package or
// from a YAML schema file:
//
//	tvs, err := schema.LoadFile("schema.yaml")
//	if err != nil {
//	    return err
//	}
//	customer, ok := schema.Find(tvs, "Customer")
//
// Column types are classified into [field.Type] tags when the column is
// built; see [NewColumn].
package schema
