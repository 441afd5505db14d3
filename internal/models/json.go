package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// jsonColumnType maps the column type per database driver. MSSQL has no native
// json type, so fall back to NVARCHAR there.
func jsonColumnType(db *gorm.DB) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	case "sqlite":
		return "JSON"
	}
	return "TEXT"
}

// StringList is an ordered sequence of strings persisted as a JSON column.
// Absent or unparseable stored text decodes to an empty list rather than an error,
// matching the tolerance required for rows written by older clients.
type StringList []string

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	*l = StringList{}
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("StringList: unsupported scan type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	var out []string
	if err := json.Unmarshal(data, &out); err != nil {
		// Tolerate legacy garbage, treat as empty
		return nil
	}
	*l = StringList(out)
	return nil
}

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GormDBDataType ensures the correct data type is used for each database driver.
func (StringList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}

// GuidanceMap maps a status name (pass, fail, blocked, partial, skip, and
// optionally needs-review) to guidance text shown to testers. Persisted as a
// JSON column; unparseable stored text decodes to an empty map.
type GuidanceMap map[string]string

// Scan implements sql.Scanner.
func (m *GuidanceMap) Scan(value interface{}) error {
	*m = GuidanceMap{}
	if value == nil {
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("GuidanceMap: unsupported scan type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	out := map[string]string{}
	if err := json.Unmarshal(data, &out); err != nil {
		return nil
	}
	*m = GuidanceMap(out)
	return nil
}

// Value implements driver.Valuer.
func (m GuidanceMap) Value() (driver.Value, error) {
	if m == nil {
		m = GuidanceMap{}
	}
	data, err := json.Marshal(map[string]string(m))
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// GormDBDataType ensures the correct data type is used for each database driver.
func (GuidanceMap) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	return jsonColumnType(db)
}
