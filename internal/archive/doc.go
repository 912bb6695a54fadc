// Package archive unpacks downloaded tool bundles. It understands gzipped
// tarballs and zip files natively and macOS disk images by mounting them with
// hdiutil and copying the bundle out.
package archive
