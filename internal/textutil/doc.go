// Package textutil provides the string helpers used when matching asset file
// names against species names.
//
// JaroWinkler scores two strings over Unicode code points, boosting shared
// prefixes of up to four characters once the plain Jaro similarity exceeds
// 0.7. CompactName and the sanitizers keep names comparable and safe for
// archive entry names.
package textutil
