package db

import (
	"strings"
	"testing"
)

func TestSchema_DeclaresAllTables(t *testing.T) {
	ddl := Schema()
	for _, table := range []string{"accounts", "channels", "videos", "comments"} {
		if !strings.Contains(ddl, "CREATE TABLE IF NOT EXISTS "+table+" (") {
			t.Errorf("schema is missing table %q", table)
		}
	}
}

func TestSchema_OneChannelPerAccount(t *testing.T) {
	if !strings.Contains(Schema(), "owner_id       UUID         NOT NULL UNIQUE") {
		t.Error("channels.owner_id must be unique")
	}
}

func TestSchema_ReactionSetsExclusive(t *testing.T) {
	if !strings.Contains(Schema(), "NOT (liked_by && disliked_by)") {
		t.Error("videos must forbid an account in both reaction sets")
	}
}

func TestSchema_Idempotent(t *testing.T) {
	for _, line := range strings.Split(Schema(), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "CREATE ") && !strings.Contains(line, "IF NOT EXISTS") {
			t.Errorf("statement is not idempotent: %s", line)
		}
	}
}
