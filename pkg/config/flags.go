package config

type RunFlagsNameMapping struct {
	BaseURL       string
	SuiteName     string
	SuiteFilePath string
	EnvFile       string
	Timeout       string

	ApiAddress    string
	ProbeInterval string

	LoaderHttpUrl        string
	LoaderHttpToken      string
	LoaderInterval       string
	LoaderHttpRetryCount string
	LoaderHttpRetryDelay string
}
