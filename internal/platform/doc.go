package platform

// Package platform contains filesystem glue: directory bootstrap for the
// download/static layout and file size labelling for ledger records.
