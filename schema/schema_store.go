package schema

import "time"

// TemplateRecord is one row of the template store. Payload is the canonical
// post-migration JSON of the template.
type TemplateRecord struct {
	TemplateID string    `json:"templateId"`
	Name       string    `json:"name"`
	Payload    string    `json:"payload"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SessionRecord is one row of the session store.
type SessionRecord struct {
	SessionID  string    `json:"sessionId"`
	Name       string    `json:"name"`
	TemplateID string    `json:"templateId"`
	Payload    string    `json:"payload"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// StoreStatus summarizes a store backend for the status command.
type StoreStatus struct {
	Backend       string    `json:"backend"`
	Connected     bool      `json:"connected"`
	Templates     int64     `json:"templates"`
	Sessions      int64     `json:"sessions"`
	LastWriteTime time.Time `json:"lastWriteTime,omitempty"`
}
