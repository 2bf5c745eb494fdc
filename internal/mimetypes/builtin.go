package mimetypes

// builtinMappings is the built-in mime-type table, in precedence order.
// Real mime types are used wherever one exists for the extension. When the
// same real type covers several extensions (yaml/yml, jpeg/jpg) the extra
// extensions get a synthetic type so each one round-trips independently.
var builtinMappings = []Mapping{
	// Video
	{"video/mp4", ".mp4"},
	{"video/x-matroska", ".mkv"},
	{"video/x-msvideo", ".avi"},
	{"video/quicktime", ".mov"},
	{"video/x-ms-wmv", ".wmv"},
	{"video/x-flv", ".flv"},
	{"video/webm", ".webm"},
	{"video/x-m4v", ".m4v"},
	{"video/mpeg", ".mpeg"},
	{"video/mpeg-mpg", ".mpg"},
	{"video/3gpp", ".3gp"},
	{"video/mp2t", ".ts"},

	// Audio
	{"audio/mpeg", ".mp3"},
	{"audio/mp4", ".m4a"},
	{"audio/x-wav", ".wav"},
	{"audio/flac", ".flac"},
	{"audio/ogg", ".ogg"},
	{"audio/opus", ".opus"},
	{"audio/aac", ".aac"},
	{"audio/x-ms-wma", ".wma"},
	{"audio/aiff", ".aiff"},
	{"audio/midi", ".mid"},

	// Archives and disk images
	{"application/x-7z-compressed", ".7z"},
	{"application/x-rar-compressed", ".rar"},
	{"application/gzip", ".gz"},
	{"application/x-tar", ".tar"},
	{"application/x-bzip2", ".bz2"},
	{"application/x-xz", ".xz"},
	{"application/zstd", ".zst"},
	{"application/x-iso9660-image", ".iso"},

	// Structured text and config formats
	{"application/yaml", ".yaml"},
	{"application/yaml-yml", ".yml"},
	{"application/toml", ".toml"},
	{"application/x-ndjson", ".ndjson"},
	{"application/sql", ".sql"},

	// Ebooks
	{"application/epub+zip", ".epub"},
	{"application/x-mobipocket-ebook", ".mobi"},
	{"application/vnd.amazon.ebook", ".azw3"},
	{"application/x-fictionbook+xml", ".fb2"},

	// Fonts
	{"font/ttf", ".ttf"},
	{"font/otf", ".otf"},
	{"font/woff", ".woff"},
	{"font/woff2", ".woff2"},

	// 3D models and CAD
	{"model/stl", ".stl"},
	{"model/obj", ".obj"},
	{"model/gltf-binary", ".glb"},
	{"model/3mf", ".3mf"},

	// Miscellaneous binary formats that otherwise land on octet-stream
	{"application/x-sqlite3", ".db"},
	{"application/vnd.sketchup.skp", ".skp"},
	{"application/x-blender", ".blend"},
	{"application/vnd.rn-realmedia", ".rm"},
	{"application/vnd.ms-asf", ".asf"},
}

// Builtin returns a fresh table holding the built-in mappings in order.
func Builtin() *Table {
	return NewTable(builtinMappings)
}
