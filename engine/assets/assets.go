// Package assets embeds the shaders and textures the sandbox runs with when no
// files are configured on disk.
package assets

import (
	"embed"
	"io/fs"
)

// BasicShaderName is the path of the textured quad shader inside FS.
const BasicShaderName = "shaders/basic.shader"

// ImGuiShaderName is the path of the debug UI shader inside FS.
const ImGuiShaderName = "shaders/imgui.shader"

// LogoTextureName is the path of the default quad texture inside FS.
const LogoTextureName = "textures/logo.png"

// BasicShader is the textured quad program. The vertex stage transforms positions by u_MVP;
// the fragment stage samples u_Texture and tints it by u_Color.
//
//go:embed shaders/basic.shader
var BasicShader string

// ImGuiShader is the debug UI program. It takes 2D positions in display pixels, a UV and a
// packed vertex color, and projects them with u_Projection.
//
//go:embed shaders/imgui.shader
var ImGuiShader string

// LogoPNG is the default quad texture, a 64x64 checker with a transparent border.
//
//go:embed textures/logo.png
var LogoPNG []byte

//go:embed shaders textures
var files embed.FS

// FS returns the embedded asset tree rooted at the directory holding shaders/ and textures/.
//
// Returns:
//   - fs.FS: the read-only asset tree
func FS() fs.FS {
	return files
}
