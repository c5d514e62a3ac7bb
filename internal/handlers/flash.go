package handlers

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
)

const flashKey = "flashes"

// Flash categories used by the admin templates.
const (
	flashSuccess = "success"
	flashError   = "error"
)

type flashMessage struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// flasher keeps one-shot admin messages in the visitor's session.
type flasher struct {
	store *session.Store
}

func (f flasher) add(c *fiber.Ctx, category, message string) error {
	sess, err := f.store.Get(c)
	if err != nil {
		return err
	}
	flashes := decodeFlashes(sess.Get(flashKey))
	flashes = append(flashes, flashMessage{Category: category, Message: message})
	raw, err := json.Marshal(flashes)
	if err != nil {
		return err
	}
	sess.Set(flashKey, string(raw))
	return sess.Save()
}

// pop returns the pending messages and clears them.
func (f flasher) pop(c *fiber.Ctx) []flashMessage {
	sess, err := f.store.Get(c)
	if err != nil {
		return nil
	}
	flashes := decodeFlashes(sess.Get(flashKey))
	if len(flashes) > 0 {
		sess.Delete(flashKey)
		_ = sess.Save()
	}
	return flashes
}

func decodeFlashes(v interface{}) []flashMessage {
	raw, ok := v.(string)
	if !ok || raw == "" {
		return nil
	}
	var flashes []flashMessage
	if err := json.Unmarshal([]byte(raw), &flashes); err != nil {
		return nil
	}
	return flashes
}
