package config

// StarterTemplate is the commented configuration written by
// `bundlemap init`.
const StarterTemplate = `# bundlemap configuration
# See https://github.com/danspam/bundlemap for the full reference.

# Directory receiving <bundle>.js and <bundle>.js.map artifacts.
output_dir: dist

# URL prefix under which output_dir is served; forms the
# sourceMappingURL reference appended to each bundle.
base_url: /js

# Minifier implementation: "native" (token-level, per-statement maps)
# or "esbuild" (smaller output, per-file maps).
engine: native

minify:
  # renaming: none | aggressive | aggressive-keep-l10n
  renaming: none
  # layout: single-line | multi-line
  layout: single-line
  strip_debug: true

bundles:
  - name: site
    resources:
      - path: js/a.js
      - path: js/b.js
`
