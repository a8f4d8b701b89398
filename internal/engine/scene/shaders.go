package scene

const litVertexShader = `
#version 410 core
layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec2 aUV;

uniform mat4 uViewProj;
uniform mat4 uModel;
uniform mat3 uNormalMatrix;

out vec3 vNormal;
out vec3 vWorldPos;
out vec2 vUV;

void main() {
	vec4 world = uModel * vec4(aPos, 1.0);
	vWorldPos = world.xyz;
	vNormal = uNormalMatrix * aNormal;
	vUV = aUV;
	gl_Position = uViewProj * world;
}
`

// Ambient plus up to 4 point lights, diffuse with a specular highlight
// from the first.
const litFragmentShader = `
#version 410 core
in vec3 vNormal;
in vec3 vWorldPos;
in vec2 vUV;

uniform vec3 uColor;
uniform bool uTextured;
uniform bool uDoubleSided;
uniform sampler2D uTexture;
uniform vec3 uCameraPos;

uniform float uAmbient;
uniform int uLightCount;
uniform vec3 uLightPos[4];
uniform vec3 uLightColor[4];

out vec4 FragColor;

void main() {
	vec4 base = vec4(uColor, 1.0);
	if (uTextured) {
		base *= texture(uTexture, vUV);
		if (base.a < 0.01) {
			discard;
		}
	}

	vec3 n = normalize(vNormal);
	if (uDoubleSided && !gl_FrontFacing) {
		n = -n;
	}

	vec3 viewDir = normalize(uCameraPos - vWorldPos);
	vec3 diffuse = vec3(0.0);
	vec3 specular = vec3(0.0);
	for (int i = 0; i < uLightCount; i++) {
		vec3 l = normalize(uLightPos[i] - vWorldPos);
		diffuse += max(dot(n, l), 0.0) * uLightColor[i];
		if (i == 0) {
			specular = pow(max(dot(n, normalize(l + viewDir)), 0.0), 32.0) * 0.15 * uLightColor[i];
		}
	}

	vec3 color = base.rgb * (vec3(uAmbient) + diffuse) + specular;
	FragColor = vec4(clamp(color, 0.0, 1.0), base.a);
}
`
