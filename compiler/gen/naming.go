package gen

import (
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// LowerFirst lower-cases the first letter of s and keeps the rest as is.
//
//	LowerFirst("CustomerId") // "customerId"
//	LowerFirst("ID")         // "iD"
func LowerFirst(s string) string {
	r, n := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	// A Caser is stateful and not safe for concurrent use.
	return cases.Lower(language.Und).String(s[:n]) + s[n:]
}

// InstanceName is the local name used for an instance of the given type,
// for example the entity parameter of a modify method.
func InstanceName(typeName string) string {
	return LowerFirst(typeName)
}

// DataObjectName is the name of the data-access type generated for a table.
func DataObjectName(table string) string {
	return table + "Data"
}

// FileName returns the conventional source file name of an artifact, e.g.
// "CustomerData.cs".
func FileName(lang Language, kind Kind, table string) string {
	if kind == KindDataObject {
		return DataObjectName(table) + lang.Extension()
	}
	return table + lang.Extension()
}
