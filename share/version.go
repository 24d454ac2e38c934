package share

// BuildVersion represents a current build version. It can be overridden by CI workflow.
var BuildVersion = SourceVersion
var SourceVersion = "0.0.0-src"
