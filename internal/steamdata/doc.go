// Package steamdata reads property tables from their text source format and
// ships the default tables embedded in the binary.
//
// Saturation files start with a header naming the columns
// (T P VL VV UL DU UV HL DH HV SL DS SV) followed by one row per sample.
// Region files start with a header "T V U H S", then groups of isobar
// blocks:
//
//	P = 0.01 MPa (45.81) 0.05 MPa (81.32) 0.1 MPa (99.61)
//	Sat. 14.670 2437.2 2583.9 8.1488 3.2403 2483.2 ...
//	50   14.867 2443.3 2592.0 8.1741 -      -      ...
//
// Each data row holds T followed by one group of values per pressure. "Sat."
// stands for the saturation temperature given in parentheses and "-" marks a
// pressure the row does not cover.
package steamdata
