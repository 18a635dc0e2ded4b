package models

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"
)

// JsonNullString 是 sql.NullString 的包裝類型，用於自訂 JSON (un)marshalling。
type JsonNullString struct {
	sql.NullString
}

// MarshalJSON 為 JsonNullString 實現 json.Marshaler 介面。
func (jns JsonNullString) MarshalJSON() ([]byte, error) {
	if !jns.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(jns.String)
}

// UnmarshalJSON 為 JsonNullString 實現 json.Unmarshaler 介面。
func (jns *JsonNullString) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		jns.String, jns.Valid = "", false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		jns.String, jns.Valid = "", false
		return fmt.Errorf("JsonNullString: 期望 JSON 字串或 null，但得到 '%s': %w", string(data), err)
	}
	jns.String, jns.Valid = s, true
	return nil
}

// JsonNullTime 是 sql.NullTime 的包裝類型。序列化時一律輸出不含時區的
// "2006-01-02 15:04:05" 格式，與匯出介面的時區剝除規則一致。
type JsonNullTime struct {
	sql.NullTime
}

// MarshalJSON 為 JsonNullTime 實現 json.Marshaler 介面。
func (jnt JsonNullTime) MarshalJSON() ([]byte, error) {
	if !jnt.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(jnt.Time.Format("2006-01-02 15:04:05"))
}

// UnmarshalJSON 為 JsonNullTime 實現 json.Unmarshaler 介面。
func (jnt *JsonNullTime) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		jnt.Time, jnt.Valid = time.Time{}, false
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		jnt.Time, jnt.Valid = time.Time{}, false
		return fmt.Errorf("JsonNullTime: 期望 JSON 字串或 null，但得到 '%s': %w", string(data), err)
	}
	t, err := time.Parse("2006-01-02 15:04:05", s)
	if err != nil {
		jnt.Time, jnt.Valid = time.Time{}, false
		return fmt.Errorf("JsonNullTime: 無法解析時間字串 '%s': %w", s, err)
	}
	jnt.Time, jnt.Valid = t, true
	return nil
}
