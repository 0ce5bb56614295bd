package cnst

const (
	// LangEN is the English language code
	LangEN = "en"
	// LangAR is the Arabic language code
	LangAR = "ar"
	// LangDefault is the language used when the client does not send X-Lang
	LangDefault = LangAR

	// XLang is the HTTP header carrying the client's display language
	XLang = "X-Lang"

	// CtxKeyTranslator is the gin context key holding the request translator
	CtxKeyTranslator = "translator"
	// CtxKeyLang is the gin context key holding the resolved language code
	CtxKeyLang = "lang"
	// CtxKeySession is the gin context key holding the authenticated session
	CtxKeySession = "session"
	// CtxKeyUser is the gin context key holding the resolved admin identity
	CtxKeyUser = "user"
)
