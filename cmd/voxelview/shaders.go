package main

// Mesh texture coordinates are already in atlas space, so the viewer sets
// texOffset/texScale to the full region. A single-region draw would pass
// that region instead.
var chunkVertexShader = `#version 410 core
layout(location = 0) in vec3 aPos;
layout(location = 1) in vec2 aTexCoord;
layout(location = 2) in float aFace;
uniform mat4 view;
uniform mat4 proj;
uniform vec2 texOffset;
uniform vec2 texScale;
out vec2 TexCoord;
flat out int Face;
void main() {
	TexCoord = texOffset + aTexCoord * texScale;
	Face = int(aFace);
	gl_Position = proj * view * vec4(aPos, 1.0);
}
`

// Faces are numbered front, back, left, right, up, down.
var chunkFragmentShader = `#version 410 core
in vec2 TexCoord;
flat in int Face;
uniform sampler2D atlas;
out vec4 FragColor;
const float shade[6] = float[6](0.8, 0.8, 0.6, 0.6, 1.0, 0.5);
void main() {
	vec4 col = texture(atlas, TexCoord);
	if (col.a < 0.1) {
		discard;
	}
	FragColor = vec4(col.rgb * shade[Face], col.a);
}
`
