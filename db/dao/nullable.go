package dao

import "database/sql"

type NullInt64 struct {
	sql.NullInt64
}

// AsPtr returns nil when the column was NULL
func (ni *NullInt64) AsPtr() *int64 {
	if !ni.NullInt64.Valid {
		return nil
	}
	val := ni.NullInt64.Int64
	return &val
}

type NullString struct {
	sql.NullString
}

// OrEmpty returns "" when the column was NULL
func (ns *NullString) OrEmpty() string {
	if !ns.NullString.Valid {
		return ""
	}
	return ns.NullString.String
}

// Int64OrNull converts an optional id into a value the driver stores as NULL when missing
func Int64OrNull(val *int64) interface{} {
	if val == nil {
		return nil
	}
	return *val
}

// StringOrNull stores "" as NULL
func StringOrNull(val string) interface{} {
	if val == "" {
		return nil
	}
	return val
}
