// Package anchor finds syntactic landmarks in a flat token sequence without
// parsing it: the entry function, its coordinate parameter, the body opening
// brace and the final return statement.
//
// Every query reports absence with ok == false. Callers treat absence as
// "leave the program alone", never as an error.
package anchor
