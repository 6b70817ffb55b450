// Package schema holds the plain data records returned by the Codecov API v2
// together with the decoders that build them from raw JSON.
//
// Records carry no network capability. Optional server fields are pointers and
// stay nil when the key is missing or null; required fields fall back to their
// zero value, so decoding never fails on an omitted key. Enum fields are the
// exception: a value outside the declared set fails with an *EnumError.
//
// The live, API-bound counterparts of these records live in package codecov.
package schema
