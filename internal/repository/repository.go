// Package repository implements persistence for services and orders on
// MongoDB.
//
// query.go translates listing parameters into filter, sort and
// projection documents; the repositories run them and map driver errors
// through dberr.
package repository
