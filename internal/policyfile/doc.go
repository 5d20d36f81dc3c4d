// Package policyfile loads merge and projection settings from YAML.
//
// The file has the following structure:
//
//	version: "1"
//	priority: merge        # merge, left or right
//	lists: strict          # strict or truncate
//	ignore:
//	  - owner: Wall        # owner type name, "" for documents, "*" for any
//	    property: QtyView
//	  - Wall.MAT           # shorthand for owner and property
//	aliases:               # destination field name -> source key
//	  Area: Area of Wall
//	normalize: true        # tolerant key matching
//	lenient: false         # missing keys leave zero values
package policyfile
