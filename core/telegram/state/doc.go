// Package state provides the per-conversation session store for Telegram
// bots: current form step, collected fields, and keyboard tracking slots.
// It is domain-agnostic so it can be reused across bots.
package state
