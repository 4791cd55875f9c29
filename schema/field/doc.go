// Package field defines the database type tags carried by schema columns.
//
// A tag is deliberately coarse. Only four families get a dedicated target
// type; everything else is generated as a string:
//
//	field.ParseType("nvarchar(50)")   // TypeString
//	field.ParseType("smalldatetime")  // TypeDateTime
//	field.ParseType("bit")            // TypeBool
//	field.ParseType("int")            // TypeInt32
//	field.ParseType("money")          // TypeOther
//
// # Command Binding
//
// DbType returns the generic parameter type used by generated data objects
// when binding a column value to a stored procedure parameter:
//
//	field.TypeInt32.DbType() // "Int32"
//	field.TypeOther.DbType() // "String"
package field
