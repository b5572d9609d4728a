// Package config loads layered settings from a settings directory. A mandatory
// "default" source is read first and an optional source named after the
// current stack (prod, test) is merged on top, key by key. Sources may be YAML
// or JSON. The package also resolves environment variable references inside
// setting values.
package config
