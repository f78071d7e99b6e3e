// Package source decodes the input CSV into an rdsload.Table.
//
// The first record is the header and names the columns. Every following
// record must have exactly one value per column. Values are kept as the raw
// strings found in the file; an empty cell stays an empty string and is
// written as NULL further down the pipeline.
//
// Files are read through a FileSystem so tests can supply CSV content from
// memory:
//
//	fs := source.NewMemoryFileSystem()
//	fs.AddFile("customers.csv", "Index,Name\n1,Ada\n")
//	table, err := source.NewReader(fs).ReadTable("customers.csv")
package source
