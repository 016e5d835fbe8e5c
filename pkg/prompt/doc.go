// Package prompt fills a worker form interactively. Fill walks the form model
// and asks for each editable field through a Driver; NewSurveyDriver provides
// the terminal implementation.
package prompt
