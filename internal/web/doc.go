package web

// Package web exposes the HTTP surface: the HTML index, format discovery,
// download submission, progress polling, the ledger listing, and static
// serving of assets and downloaded media. Handlers validate input and
// delegate; downloads run in the background and are observed by polling.
