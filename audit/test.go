/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package audit

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// TestActor is the actor of TestContext.
const TestActor = "test-actor"

// TestContext returns a context with audit information, for use in tests.
func TestContext() context.Context {
	return Context(context.Background(), TestActor, "TestModule", "TestOperation")
}

// CapturedLog holds the audit log entries written during a test.
type CapturedLog struct {
	hook *test.Hook
}

// CaptureLogs captures audit log entries until the test ends.
func CaptureLogs(t *testing.T) *CapturedLog {
	// Reset the hooks to their original state when the test ends
	oldHooks := make(logrus.LevelHooks)
	for level, hooks := range auditLogger().Hooks {
		oldHooks[level] = hooks
	}
	t.Cleanup(func() {
		auditLogger().ReplaceHooks(oldHooks)
	})
	hook := &test.Hook{}
	auditLogger().AddHook(hook)
	return &CapturedLog{hook: hook}
}

// Contains returns whether an audit entry with the given event name was logged.
func (c *CapturedLog) Contains(eventName string) bool {
	return c.find(func(entry *logrus.Entry) bool {
		return entry.Data["event"] == eventName
	}) != nil
}

// AssertContains asserts an audit entry was logged with the given event, actor and message.
func (c *CapturedLog) AssertContains(t *testing.T, event string, actor string, message string) {
	t.Helper()
	found := c.find(func(entry *logrus.Entry) bool {
		return entry.Data["log"] == "audit" &&
			entry.Data["event"] == event &&
			entry.Data["actor"] == actor &&
			entry.Message == message
	})
	if found != nil {
		return
	}
	var entries []string
	for _, entry := range c.hook.AllEntries() {
		formatted, _ := (&logrus.TextFormatter{}).Format(entry)
		entries = append(entries, string(formatted))
	}
	t.Errorf("Audit log doesn't contain expected entry with\n"+
		"  expected: event=%s, actor=%s, message=%s\n"+
		"  found: %v", event, actor, message, entries)
}

func (c *CapturedLog) find(predicate func(entry *logrus.Entry) bool) *logrus.Entry {
	for _, entry := range c.hook.AllEntries() {
		if predicate(entry) {
			return entry
		}
	}
	return nil
}
