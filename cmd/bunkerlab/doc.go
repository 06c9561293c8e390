// Command bunkerlab fills bunker fuel analysis report templates and converts
// the result to PDF with headless LibreOffice. Reports are produced either
// one-shot (generate) or through a guided questionnaire (interview).
package main
