// Package locale holds the locale routing configuration: the configured
// locales, the URL strategy and the browser-language detection settings.
//
// Configuration is read from YAML and optionally overlaid with environment
// variables:
//
//	cfg, err := locale.LoadFile("i18n.yaml")
//	if err != nil {
//		return err
//	}
//	if err := locale.LoadEnv(&cfg); err != nil { // I18N_STRATEGY=prefix ...
//		return err
//	}
//	if err := cfg.Validate(); err != nil {
//		return err
//	}
//
// A minimal YAML file:
//
//	strategy: prefix_except_default
//	defaultLocale: en
//	locales:
//	  - code: en
//	    language: en-US
//	  - code: fr
//	    language: fr-FR
//	detectBrowserLanguage:
//	  useCookie: true
//	  redirectOn: root
//
// Strategies:
//   - [NoPrefix]: URLs never carry a locale
//   - [Prefix]: every URL starts with /<code>
//   - [PrefixExceptDefault]: every locale but the default one is prefixed
//   - [PrefixAndDefault]: like Prefix, plus unprefixed routes for the default locale
package locale
