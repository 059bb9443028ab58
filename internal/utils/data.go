package utils

import (
	"encoding/json"
	"fmt"
	"time"
)

const LayoutData = "2006-01-02"

// Data aceita "2006-01-02" ou RFC 3339 no JSON dos DTOs
type Data struct {
	time.Time
}

func NovaData(t time.Time) Data {
	return Data{Time: Dia(t)}
}

func (d Data) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Format(LayoutData))
}

func (d *Data) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		d.Time = time.Time{}
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.ParseInLocation(LayoutData, s, time.Local); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("data inválida: %s", s)
	}
	d.Time = Dia(t)
	return nil
}

// Ptr devolve nil para data vazia
func (d *Data) Ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}

// Dia trunca para meia-noite no fuso local
func Dia(t time.Time) time.Time {
	y, m, d := t.In(time.Local).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}
