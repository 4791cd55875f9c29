// Package gen builds and renders the code generated for database tables
// and views.
//
// Two artifacts are produced per table or view:
//
//   - an entity: a private field and a public property per column, a
//     parameterless constructor and a constructor taking every column
//   - a data object, {Table}Data: a private constructor and the static
//     methods Insert{Table}, GetAll{Table}, Update{Table} and
//     Delete{Table}, each calling a stored procedure of the same name
//
// # Architecture
//
// Generation runs in two steps:
//
//	schema.TableView
//	        ↓
//	   Builder (code model: TypeDecl, members, statements, expressions)
//	        ↓
//	   Language.RenderType / Language.RenderMember
//	        ↓
//	   source text
//
// The Builder is language independent; it only asks the Language for type
// and identifier names. Providers live in sub packages (csharp, vb,
// golang) and are looked up by key in a Registry.
//
// The TemplateEngine is the second path. It renders members standalone
// and substitutes them for the tokens of a user template:
//
//	public partial class $ClassName$
//	{
//	$Fields$
//	$Constructors$
//	$Properties$
//	}
//
// # Error Handling
//
// Errors are typed and match a sentinel with errors.Is:
//
//   - TableError: ErrInvalidTable
//   - ConfigError: ErrMissingConfig, and ErrUnknownLanguage for unknown keys
//   - GenerationError: ErrGenerationFailed
//   - ValidationError: ErrValidationFailed
//
// # Configuration
//
// The names of the data-access API, the exception policy hook and the
// template tokens are set with functional options:
//
//	cfg, err := gen.NewConfig(
//	    gen.WithExceptionPolicy("Data Access Policy"),
//	    gen.WithTokens(gen.Tokens{ClassName: "{{Name}}"}),
//	)
package gen
