package database

import (
	"testing"

	"ophasebot/internal/config"
)

func TestNewMongoClientDisabled(t *testing.T) {
	if NewMongoClient(&config.Config{}) != nil {
		t.Fatal("client created with mongo disabled")
	}
}

func TestNewMongoClient(t *testing.T) {
	conf := &config.Config{Mongo: config.MongoConfig{
		Enabled:  true,
		Host:     "db",
		Port:     "27017",
		User:     "bot",
		Password: "secret",
		Database: "ophase",
	}}
	m := NewMongoClient(conf)
	if m == nil {
		t.Fatal("client not created")
	}
	if m.database != "ophase" {
		t.Errorf("database = %q", m.database)
	}
	if m.clientOptions.Auth == nil || m.clientOptions.Auth.Username != "bot" {
		t.Errorf("auth = %+v", m.clientOptions.Auth)
	}
}

func TestGrantsLimit(t *testing.T) {
	tests := map[int]int{-3: 50, 0: 50, 1: 1, 120: 120, 500: 500, 10000: 500}
	for in, want := range tests {
		if got := GrantsLimit(in); got != want {
			t.Errorf("GrantsLimit(%d) = %d, want %d", in, got, want)
		}
	}
}
