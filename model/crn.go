package model

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// CRN is a course reference number. The registration service sends it as a
// JSON number or string depending on the endpoint, so both are accepted.
type CRN string

func (c *CRN) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = CRN(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	if i, err := n.Int64(); err == nil {
		*c = CRN(strconv.FormatInt(i, 10))
		return nil
	}
	*c = CRN(n.String())
	return nil
}

func (c CRN) String() string {
	return string(c)
}
