package schema

import (
	"encoding/json"
	"slices"
	"strconv"
)

// Service represents the Git hosting provider of an owner
type Service string

const (
	// ServiceGitHub is github.com
	ServiceGitHub Service = "github"
	// ServiceGitLab is gitlab.com
	ServiceGitLab Service = "gitlab"
	// ServiceBitbucket is bitbucket.org
	ServiceBitbucket Service = "bitbucket"
	// ServiceGitHubEnterprise is a self-hosted GitHub
	ServiceGitHubEnterprise Service = "github_enterprise"
	// ServiceGitLabEnterprise is a self-hosted GitLab
	ServiceGitLabEnterprise Service = "gitlab_enterprise"
	// ServiceBitbucketServer is a self-hosted Bitbucket
	ServiceBitbucketServer Service = "bitbucket_server"
)

// Services lists every known Service.
var Services = []Service{
	ServiceGitHub,
	ServiceGitLab,
	ServiceBitbucket,
	ServiceGitHubEnterprise,
	ServiceGitLabEnterprise,
	ServiceBitbucketServer,
}

// ParseService converts a raw string into a Service.
func ParseService(raw string) (Service, error) {
	return parseEnum("Service", Services, raw)
}

// String returns the string representation of a Service
func (s Service) String() string {
	return string(s)
}

// UnmarshalJSON rejects values that are not a known Service.
func (s *Service) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, s, ParseService)
}

// CommitState is the processing state of a commit upload on Codecov.
type CommitState string

const (
	// CommitStateComplete indicates processing finished
	CommitStateComplete CommitState = "complete"
	// CommitStatePending indicates processing has not finished yet
	CommitStatePending CommitState = "pending"
	// CommitStateError indicates processing failed
	CommitStateError CommitState = "error"
	// CommitStateSkipped indicates processing was skipped
	CommitStateSkipped CommitState = "skipped"
)

var commitStates = []CommitState{
	CommitStateComplete,
	CommitStatePending,
	CommitStateError,
	CommitStateSkipped,
}

// ParseCommitState converts a raw string into a CommitState.
func ParseCommitState(raw string) (CommitState, error) {
	return parseEnum("CommitState", commitStates, raw)
}

// String returns the string representation of a CommitState
func (s CommitState) String() string {
	return string(s)
}

// UnmarshalJSON rejects values that are not a known CommitState.
func (s *CommitState) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, s, ParseCommitState)
}

// PullState is the state of a pull request.
type PullState string

const (
	// PullStateOpen is a pull request that is still open
	PullStateOpen PullState = "open"
	// PullStateMerged is a merged pull request
	PullStateMerged PullState = "merged"
	// PullStateClosed is a pull request closed without merging
	PullStateClosed PullState = "closed"
)

var pullStates = []PullState{PullStateOpen, PullStateMerged, PullStateClosed}

// ParsePullState converts a raw string into a PullState.
func ParsePullState(raw string) (PullState, error) {
	return parseEnum("PullState", pullStates, raw)
}

// UnmarshalJSON rejects values that are not a known PullState.
func (s *PullState) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, s, ParsePullState)
}

// Interval is the bucket width of a coverage trend query.
type Interval string

const (
	// Interval1Day groups coverage by day
	Interval1Day Interval = "1d"
	// Interval7Days groups coverage by week
	Interval7Days Interval = "7d"
	// Interval30Days groups coverage by 30 day window
	Interval30Days Interval = "30d"
)

var intervals = []Interval{Interval1Day, Interval7Days, Interval30Days}

// ParseInterval converts a raw string into an Interval.
func ParseInterval(raw string) (Interval, error) {
	return parseEnum("Interval", intervals, raw)
}

// Language is the primary programming language of a repository.
type Language string

// Languages reported by Codecov, named after their wire values.
const (
	LanguageJavaScript Language = "javascript"
	LanguageShell      Language = "shell"
	LanguagePython     Language = "python"
	LanguageRuby       Language = "ruby"
	LanguagePerl       Language = "perl"
	LanguageDart       Language = "dart"
	LanguageJava       Language = "java"
	LanguageC          Language = "c"
	LanguageClojure    Language = "clojure"
	LanguageD          Language = "d"
	LanguageFortran    Language = "fortran"
	LanguageGo         Language = "go"
	LanguageGroovy     Language = "groovy"
	LanguageKotlin     Language = "kotlin"
	LanguagePHP        Language = "php"
	LanguageR          Language = "r"
	LanguageScala      Language = "scala"
	LanguageSwift      Language = "swift"
	LanguageObjectiveC Language = "objective-c"
	LanguageXtend      Language = "xtend"
	LanguageTypeScript Language = "typescript"
	LanguageHaskell    Language = "haskell"
	LanguageRust       Language = "rust"
	LanguageLua        Language = "lua"
	LanguageMatlab     Language = "matlab"
	LanguageAssembly   Language = "assembly"
	LanguageScheme     Language = "scheme"
	LanguagePowerShell Language = "powershell"
	LanguageApex       Language = "apex"
	LanguageVerilog    Language = "verilog"
	LanguageCommonLisp Language = "common lisp"
	LanguageErlang     Language = "erlang"
	LanguageJulia      Language = "julia"
	LanguageProlog     Language = "prolog"
	LanguageVue        Language = "vue"
	LanguageCPlusPlus  Language = "c++"
	LanguageCSharp     Language = "c#"
	LanguageFSharp     Language = "f#"
)

var languages = []Language{
	LanguageJavaScript, LanguageShell, LanguagePython, LanguageRuby, LanguagePerl,
	LanguageDart, LanguageJava, LanguageC, LanguageClojure, LanguageD, LanguageFortran,
	LanguageGo, LanguageGroovy, LanguageKotlin, LanguagePHP, LanguageR, LanguageScala,
	LanguageSwift, LanguageObjectiveC, LanguageXtend, LanguageTypeScript, LanguageHaskell,
	LanguageRust, LanguageLua, LanguageMatlab, LanguageAssembly, LanguageScheme,
	LanguagePowerShell, LanguageApex, LanguageVerilog, LanguageCommonLisp, LanguageErlang,
	LanguageJulia, LanguageProlog, LanguageVue, LanguageCPlusPlus, LanguageCSharp, LanguageFSharp,
}

// ParseLanguage converts a raw string into a Language.
func ParseLanguage(raw string) (Language, error) {
	return parseEnum("Language", languages, raw)
}

// UnmarshalJSON rejects values that are not a known Language.
func (l *Language) UnmarshalJSON(data []byte) error {
	return unmarshalEnum(data, l, ParseLanguage)
}

// Coverage is the coverage status of a single line
type Coverage int

const (
	// CoverageHit indicates the line was executed
	CoverageHit Coverage = iota
	// CoverageMiss indicates the line was not executed
	CoverageMiss
	// CoveragePartial indicates only some branches of the line were executed
	CoveragePartial
)

// ParseCoverage converts a raw integer into a Coverage.
func ParseCoverage(raw int) (Coverage, error) {
	c := Coverage(raw)
	if c < CoverageHit || c > CoveragePartial {
		return 0, &EnumError{Enum: "Coverage", Value: strconv.Itoa(raw)}
	}
	return c, nil
}

// String returns the string representation of a Coverage
func (c Coverage) String() string {
	switch c {
	case CoverageHit:
		return "hit"
	case CoverageMiss:
		return "miss"
	case CoveragePartial:
		return "partial"
	default:
		return "unknown"
	}
}

// UnmarshalJSON rejects values that are not a known Coverage.
func (c *Coverage) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	var raw int
	if err := json.Unmarshal(data, &raw); err != nil {
		return &EnumError{Enum: "Coverage", Value: string(data)}
	}
	parsed, err := ParseCoverage(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func parseEnum[E ~string](name string, members []E, raw string) (E, error) {
	if slices.Contains(members, E(raw)) {
		return E(raw), nil
	}
	return "", &EnumError{Enum: name, Value: raw}
}

// unmarshalEnum leaves dst untouched on null, as encoding/json expects.
func unmarshalEnum[E ~string](data []byte, dst *E, parse func(string) (E, error)) error {
	if string(data) == "null" {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		// Parse on the literal text gives the same EnumError shape for non-strings.
		_, perr := parse(string(data))
		return perr
	}
	parsed, err := parse(raw)
	if err != nil {
		return err
	}
	*dst = parsed
	return nil
}
