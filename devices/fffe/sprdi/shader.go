package sprdi

const vertex = `
#version 420

in  vec3 vertPos;
in  vec2 vertTexCoord;
out vec2 fragTexCoord;

void main() {
    fragTexCoord = vertTexCoord;
    gl_Position  = vec4(vertPos, 1);
}

`
const fragment = `
#version 420

// colors[0] is the background, colors[1] the foreground.
uniform vec4 colors[2];

layout (binding = 0) uniform sampler2D screen;

in  vec2 fragTexCoord;
out vec4 outputColor;

void main() {
    // Pixels are stored as 0 or 1 in the red channel.
    float on = step(0.5 / 255.0, texture(screen, fragTexCoord).r);
    outputColor = mix(colors[0], colors[1], on);
}
`
