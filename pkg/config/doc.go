// Package config loads route parameter contracts from YAML or JSON files and
// compiles them into a shared table of validators.
//
// A route file looks like:
//
//	routes:
//	  - name: get-user
//	    method: GET
//	    path: /users/{user_id}
//	    parameters:
//	      type: object
//	      properties:
//	        user_id: {type: integer, source: path}
//	        x_token: {type: string, source: header}
//	        verbose: {type: boolean, source: query}
//	      required: [x_token]
//
// Files can be loaded one at a time or through a glob (** supported), in
// which case route names must be unique across all matched files.
package config
