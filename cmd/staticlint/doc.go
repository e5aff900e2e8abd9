// staticlint implements set of static checks for this project.
//
// Following checks are included:
//
// 1. Selected checks from golang.org/x/tools/go/analysis/passes
//
// 2. All SA checks from https://staticcheck.io/docs/checks/
//
// 3. ST1019 check from https://staticcheck.io/docs/checks/#ST1019
//
// 4. Check that HTTP response bodies are closed https://github.com/timakin/bodyclose
//
// 5. Check wrapping errors https://github.com/fatih/errwrap
//
// 6. Check for calling os.Exit in main func of main package
//
// Example:
//
//	staticlint ./...
//
// Perform SA1000 analysis for given project.
//
//	staticlint -SA1000 ./...
//
// For more details run:
//
//	staticlint -help
//
// noexit investigates main package for calling os.Exit from main function. Run this check with following command:
//
//	staticlint -noexit ./...
package main
