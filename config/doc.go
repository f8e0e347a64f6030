// Package config provides functionality for loading and managing application configuration.
//
// This package holds the settings structs used by the library (logger and
// database settings), validates them, and offers a viper-based loader for
// applications that wire generic views into a server.
package config
