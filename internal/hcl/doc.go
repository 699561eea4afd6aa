// Package hcl provides the HCL and go-cty backed readers and codecs used by
// the generator: HCL dependency lists, handler.hcl descriptors, the tool
// config file, and the cty-typed JSON codec shared by the JSON dependency
// lists and the snapshot.
package hcl
