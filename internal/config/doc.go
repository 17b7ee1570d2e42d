// Package config loads widgetdom settings for the command line tool.
//
// Settings live in widgetdom.yaml or widgetdom.json in the working
// directory. YAML files may reference environment variables with $VAR or
// ${VAR}; they are expanded before parsing.
//
// # Configuration File Structure
//
//	log:
//	  level: debug        # debug | info | warn | error
//	  format: json        # text | json
//	dom:
//	  warnNoChildren: true
//	metrics:
//	  enabled: true
//	  namespace: myapp
//	tracing:
//	  enabled: false
//	  tracerName: myapp
//	devtools:
//	  addr: 127.0.0.1:7070
//	  history: 512
//
// # Usage
//
//	cfg, err := config.LoadOrDefault(".")
//	if err != nil {
//	    return err
//	}
//	doc := dom.NewDocument(dom.WithWarnNoChildren(cfg.DOM.WarnNoChildren))
package config
