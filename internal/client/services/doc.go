// Package services holds the flows the front-end runs on top of the gateway:
// signing in and out, the dashboard snapshot and the barcode quick-inbound.
package services
