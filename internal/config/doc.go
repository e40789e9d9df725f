// Package config provides configuration management for kore.
//
// Configuration is loaded and merged in the following order, later sources
// overriding earlier ones:
//
//  1. Default Configuration (embedded in binary)
//     - file-backed UI state under ~/.config/kore/state
//     - clusters discovered from the default kubeconfig
//
//  2. User Configuration (~/.config/kore/config.yaml)
//
//  3. Project Configuration (./.kore/config.yaml)
//
//  4. Environment (KORE_STORE_BACKEND, KORE_STORE_DIR, KORE_REDIS_ADDR,
//     KORE_REDIS_DB, KORE_KUBECONFIG), optionally seeded from ./.kore/.env
//
// # Configuration Structure
//
//	store:
//	  backend: file          # file | memory | redis
//	  dir: ~/.config/kore/state
//	  redisAddr: localhost:6379
//	  keyPrefix: "kore:"
//
//	kube:
//	  kubeconfig: ~/.kube/config
//	  discoverContexts: true
//	  namespaceTimeout: 15s
//
//	clusters:
//	  - id: prod-eu
//	    name: Production EU
//	    context: prod-eu-admin
//	    tags: [prod, eu]
//
// Clusters are merged by id; a later layer replaces an entry with the same id.
package config
