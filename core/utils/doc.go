// Package utils provides common utility functions for the quote-manager application.
// It includes helper functions for type conversion of loosely typed values read from
// legacy quote payloads and database rows.
package utils
