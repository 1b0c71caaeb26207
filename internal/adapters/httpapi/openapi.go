package httpapi

import (
	"net/http"

	"github.com/Guilhem-Bonnet/zetflix/internal/app"
	"github.com/Guilhem-Bonnet/zetflix/internal/buildinfo"
	"github.com/Guilhem-Bonnet/zetflix/internal/httpjson"
)

// handleOpenAPI renvoie une description OpenAPI de l'API publique.
func (s *Server) handleOpenAPI(w http.ResponseWriter, r *http.Request) {
	httpjson.Write(w, http.StatusOK, openAPIDocument())
}

func openAPIDocument() map[string]any {
	ref := func(name string) map[string]any {
		return map[string]any{"$ref": "#/components/schemas/" + name}
	}
	jsonOK := func(schema string) map[string]any {
		return map[string]any{
			"description": "OK",
			"content": map[string]any{
				"application/json": map[string]any{"schema": ref(schema)},
			},
		}
	}
	jsonErr := map[string]any{
		"description": "Error",
		"content": map[string]any{
			"application/json": map[string]any{"schema": ref("Error")},
		},
	}
	jsonBody := func(schema string) map[string]any {
		return map[string]any{
			"required": true,
			"content": map[string]any{
				"application/json": map[string]any{"schema": ref(schema)},
			},
		}
	}
	param := func(name, in, typ string, required bool) map[string]any {
		return map[string]any{"name": name, "in": in, "required": required, "schema": map[string]any{"type": typ}}
	}
	upstream := func(schema string, params ...map[string]any) map[string]any {
		op := map[string]any{
			"responses": map[string]any{
				"200": jsonOK(schema),
				"400": jsonErr,
				"404": jsonErr,
				"502": jsonErr,
				"503": jsonErr,
			},
		}
		if len(params) > 0 {
			ps := make([]any, 0, len(params))
			for _, p := range params {
				ps = append(ps, p)
			}
			op["parameters"] = ps
		}
		return op
	}
	object := func(props map[string]any, required ...string) map[string]any {
		o := map[string]any{"type": "object", "properties": props}
		if len(required) > 0 {
			req := make([]any, 0, len(required))
			for _, r := range required {
				req = append(req, r)
			}
			o["required"] = req
		}
		return o
	}
	str := map[string]any{"type": "string"}
	integer := map[string]any{"type": "integer"}
	number := map[string]any{"type": "number", "format": "double"}
	boolean := map[string]any{"type": "boolean"}
	arrayOf := func(items map[string]any) map[string]any {
		return map[string]any{"type": "array", "items": items}
	}
	mediaType := map[string]any{"type": "string", "enum": []any{"movie", "tv"}}

	media := object(map[string]any{
		"id":               integer,
		"kind":             mediaType,
		"title":            str,
		"originalTitle":    str,
		"overview":         str,
		"posterPath":       str,
		"backdropPath":     str,
		"releaseDate":      str,
		"voteAverage":      number,
		"voteCount":        integer,
		"genreIds":         arrayOf(integer),
		"popularity":       number,
		"originalLanguage": str,
		"adult":            boolean,
		"originCountry":    arrayOf(str),
	}, "id", "kind", "title")

	pageProps := func(extra map[string]any) map[string]any {
		props := map[string]any{
			"page":         integer,
			"totalPages":   integer,
			"totalResults": integer,
			"hasMore":      boolean,
			"results":      arrayOf(ref("Media")),
		}
		for k, v := range extra {
			props[k] = v
		}
		return props
	}

	genreParam := param("genre", "query", "string", false)
	pageParam := param("page", "query", "integer", false)
	idParam := param("id", "path", "integer", true)

	return map[string]any{
		"openapi": "3.0.3",
		"info": map[string]any{
			"title":   "ZetFlix API",
			"version": buildinfo.Current().Version,
		},
		"components": map[string]any{
			"schemas": map[string]any{
				"OpenAPIDocument": map[string]any{"type": "object", "additionalProperties": true},
				"Error":           object(map[string]any{"error": str}, "error"),
				"Media":           media,
				"Genre":           object(map[string]any{"id": integer, "name": str}, "id", "name"),
				"GenreList":       object(map[string]any{"genres": arrayOf(ref("Genre"))}, "genres"),
				"Video": object(map[string]any{
					"id": str, "key": str, "name": str, "site": str, "type": str, "official": boolean, "publishedAt": str,
				}),
				"CastMember": object(map[string]any{
					"id": integer, "name": str, "character": str, "profilePath": str, "order": integer,
				}),
				"Home": object(map[string]any{
					"hero": arrayOf(ref("Media")),
					"rows": arrayOf(object(map[string]any{
						"title":     str,
						"mediaType": mediaType,
						"items":     arrayOf(ref("Media")),
					})),
				}, "hero", "rows"),
				"Listing": object(pageProps(map[string]any{
					"title":         str,
					"description":   str,
					"mediaType":     mediaType,
					"selectedGenre": ref("Genre"),
					"genres":        arrayOf(ref("Genre")),
				})),
				"Search": object(pageProps(map[string]any{
					"query": str,
					"type":  map[string]any{"type": "string", "enum": []any{"multi", "movie", "tv"}},
				})),
				"MovieDetail": object(map[string]any{
					"movie":       map[string]any{"type": "object", "additionalProperties": true},
					"trailer":     ref("Video"),
					"videos":      arrayOf(ref("Video")),
					"cast":        arrayOf(ref("CastMember")),
					"similar":     arrayOf(ref("Media")),
					"ratingText":  str,
					"runtimeText": str,
					"budgetText":  str,
					"revenueText": str,
					"inWatchlist": boolean,
				}),
				"TVDetail": object(map[string]any{
					"show":        map[string]any{"type": "object", "additionalProperties": true},
					"trailer":     ref("Video"),
					"videos":      arrayOf(ref("Video")),
					"cast":        arrayOf(ref("CastMember")),
					"ratingText":  str,
					"inWatchlist": boolean,
				}),
				"ImageURL": object(map[string]any{"url": str}, "url"),
				"WatchlistEntry": map[string]any{
					"allOf": []any{
						ref("Media"),
						object(map[string]any{
							"mediaType": mediaType,
							"addedAt":   map[string]any{"type": "string", "format": "date-time"},
						}, "mediaType", "addedAt"),
					},
				},
				"Watchlist": object(map[string]any{
					"items": arrayOf(ref("WatchlistEntry")),
					"stats": object(map[string]any{"total": integer, "movies": integer, "tv": integer}),
				}, "items", "stats"),
				"WatchlistAddRequest": object(map[string]any{
					"mediaType": mediaType,
					"id":        integer,
					"media":     ref("Media"),
				}, "mediaType"),
				"WatchlistAddResponse": object(map[string]any{
					"entry":    ref("WatchlistEntry"),
					"inserted": boolean,
				}, "entry", "inserted"),
				"WatchlistMembership": object(map[string]any{
					"inWatchlist": boolean,
					"entry":       ref("WatchlistEntry"),
				}, "inWatchlist"),
				"Settings": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"language":              str,
						"region":                str,
						"includeAdult":          boolean,
						"maxConcurrentRequests": map[string]any{"type": "integer", "minimum": 1, "maximum": app.MaxConcurrentRequestsCap},
					},
					"additionalProperties": false,
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/health": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/version": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "OK"}}},
			},
			"/api/v1/openapi.json": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("OpenAPIDocument")}},
			},
			"/api/v1/events": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": map[string]any{"description": "SSE"}}},
			},
			"/api/v1/home":         map[string]any{"get": upstream("Home")},
			"/api/v1/movies":       map[string]any{"get": upstream("Listing", genreParam, pageParam)},
			"/api/v1/movies/{id}":  map[string]any{"get": upstream("MovieDetail", idParam)},
			"/api/v1/tv":           map[string]any{"get": upstream("Listing", genreParam, pageParam)},
			"/api/v1/tv/{id}":      map[string]any{"get": upstream("TVDetail", idParam)},
			"/api/v1/genres/{mediaType}": map[string]any{
				"get": upstream("GenreList", param("mediaType", "path", "string", true)),
			},
			"/api/v1/search": map[string]any{
				"get": upstream("Search", param("q", "query", "string", false), param("type", "query", "string", false), pageParam),
			},
			"/api/v1/images/{class}": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						param("class", "path", "string", true),
						param("path", "query", "string", false),
						param("size", "query", "string", false),
					},
					"responses": map[string]any{"200": jsonOK("ImageURL"), "400": jsonErr},
				},
			},
			"/api/v1/watchlist": map[string]any{
				"get": map[string]any{"responses": map[string]any{"200": jsonOK("Watchlist")}},
				"post": map[string]any{
					"requestBody": jsonBody("WatchlistAddRequest"),
					"responses": map[string]any{
						"200": jsonOK("WatchlistAddResponse"),
						"201": jsonOK("WatchlistAddResponse"),
						"400": jsonErr,
						"500": jsonErr,
						"502": jsonErr,
					},
				},
				"delete": map[string]any{"responses": map[string]any{"204": map[string]any{"description": "Cleared"}, "500": jsonErr}},
			},
			"/api/v1/watchlist/{mediaType}/{id}": map[string]any{
				"parameters": []any{param("mediaType", "path", "string", true), idParam},
				"get":        map[string]any{"responses": map[string]any{"200": jsonOK("WatchlistMembership"), "400": jsonErr}},
				"delete": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{"description": "Removed flag"},
						"400": jsonErr,
						"500": jsonErr,
					},
				},
			},
			"/api/v1/settings": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": jsonOK("Settings"),
						"500": jsonErr,
					},
				},
				"put": map[string]any{
					"requestBody": jsonBody("Settings"),
					"responses": map[string]any{
						"200": jsonOK("Settings"),
						"400": jsonErr,
						"500": jsonErr,
					},
				},
			},
		},
	}
}
