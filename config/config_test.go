package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_DatabaseConfigs_ConnectionString(t *testing.T) {
	configs := Configs{
		Database: DatabaseConfigs{
			Host:     "localhost",
			Port:     "3306",
			Database: "unisubs",
			User:     "root",
			Password: "secret",
		},
	}

	// Called on the nested field value, the way the server wires gorm.
	require.Equal(t,
		"root:secret@tcp(localhost:3306)/unisubs?charset=utf8mb4&parseTime=True&loc=Local",
		configs.Database.ConnectionString())
}
